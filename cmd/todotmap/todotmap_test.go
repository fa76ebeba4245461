package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `<scene>
	<nodes>
		<node name="sun">
			<position x="1" y="2" z="3"/>
			<rotation qx="0" qy="0" qz="0" qw="1"/>
			<scale x="1" y="1" z="1"/>
			<game/>
			<light powerScale="2.5"/>
		</node>
		<node name="cube">
			<position x="0" y="0" z="0"/>
			<rotation qx="0" qy="0" qz="0" qw="1"/>
			<scale x="1" y="1" z="1"/>
			<game/>
			<entity meshFile="cube.mesh"/>
		</node>
	</nodes>
</scene>
`

const testMap = "Light 2.5\nPos 1 2 3 \nEndObject\n\n" +
	"Object cube.mesh\nPos 0 0 0 \nOrent 0 0 0 1 \nPhysicShape STATIC 0\nEndObject\n\n"

func resetConfig(t *testing.T) {
	old := Config
	t.Cleanup(func() { Config = old })

	Config.OutputFile = ""
	Config.Verbose = false
	Config.Colour = false
	Config.Scale = false
	Config.Physics.Shape = "STATIC"
	Config.Physics.Mass = "0"
}

func writeScene(t *testing.T, contents string) string {
	fn := filepath.Join(t.TempDir(), "test.scene")
	if err := os.WriteFile(fn, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestUsage(t *testing.T) {
	resetConfig(t)
	var stdout, stderr bytes.Buffer

	if rv := run(nil, &stdout, &stderr); rv == 0 {
		t.Errorf("Expected a non-zero exit status without arguments")
	}
	if stdout.String() != usageMessage+"\n" {
		t.Errorf("Expected the usage message on stdout, got %q", stdout.String())
	}
}

func TestConvertToStdout(t *testing.T) {
	resetConfig(t)
	var stdout, stderr bytes.Buffer

	if rv := run([]string{writeScene(t, testScene)}, &stdout, &stderr); rv != 0 {
		t.Fatalf("Exit status %d; stderr: %s", rv, stderr.String())
	}
	if stdout.String() != testMap {
		t.Errorf("Expected %q, got %q", testMap, stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", stderr.String())
	}
}

func TestConvertToFile(t *testing.T) {
	resetConfig(t)
	Config.OutputFile = filepath.Join(t.TempDir(), "out.map")
	Config.Verbose = true
	var stdout, stderr bytes.Buffer

	if rv := run([]string{writeScene(t, testScene)}, &stdout, &stderr); rv != 0 {
		t.Fatalf("Exit status %d; stderr: %s", rv, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout.String())
	}

	b, err := os.ReadFile(Config.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != testMap {
		t.Errorf("Expected %q, got %q", testMap, b)
	}
	if !strings.Contains(stderr.String(), "converted 2 nodes (1 lights, 1 objects)") {
		t.Errorf("Unexpected summary %q", stderr.String())
	}
}

func TestFailureLeavesNoOutput(t *testing.T) {
	resetConfig(t)
	Config.OutputFile = filepath.Join(t.TempDir(), "out.map")
	broken := strings.Replace(testScene, `meshFile="cube.mesh"`, "", 1)
	var stdout, stderr bytes.Buffer

	if rv := run([]string{writeScene(t, broken)}, &stdout, &stderr); rv == 0 {
		t.Fatalf("Expected a non-zero exit status")
	}
	if _, err := os.Stat(Config.OutputFile); !os.IsNotExist(err) {
		t.Errorf("The output file should not have been created")
	}
	if !strings.Contains(stderr.String(), "meshFile") {
		t.Errorf("Expected the missing attribute to be named, got %q", stderr.String())
	}
}

func TestMissingFile(t *testing.T) {
	resetConfig(t)
	var stdout, stderr bytes.Buffer

	if rv := run([]string{filepath.Join(t.TempDir(), "nope.scene")}, &stdout, &stderr); rv == 0 {
		t.Errorf("Expected a non-zero exit status")
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout, got %q", stdout.String())
	}
}

func TestWriteFailureRemovesOutput(t *testing.T) {
	resetConfig(t)
	Config.OutputFile = filepath.Join(t.TempDir(), "out.map")

	// Hand back a read-only handle so that every write fails
	oldCreate := createFile
	createFile = func(name string) (*os.File, error) {
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		f.Close()
		return os.Open(name)
	}
	t.Cleanup(func() { createFile = oldCreate })

	var stdout, stderr bytes.Buffer
	if rv := run([]string{writeScene(t, testScene)}, &stdout, &stderr); rv == 0 {
		t.Fatalf("Expected a non-zero exit status")
	}
	if _, err := os.Stat(Config.OutputFile); !os.IsNotExist(err) {
		t.Errorf("A partially written output file should have been removed")
	}
}
