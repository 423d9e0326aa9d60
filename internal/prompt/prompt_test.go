package prompt

import (
	"strings"
	"testing"
)

func TestBuildLinux(t *testing.T) {
	p := Build("list all files larger than 100MB", Linux)

	if !strings.Contains(p, "Linux (Terminal)") {
		t.Errorf("prompt missing Linux OS label:\n%s", p)
	}
	if !strings.Contains(p, "ls -la") {
		t.Errorf("prompt missing example command:\n%s", p)
	}
	if !strings.Contains(p, "Task: list all files larger than 100MB") {
		t.Errorf("prompt missing literal instruction:\n%s", p)
	}
}

func TestBuildWindows(t *testing.T) {
	p := Build("show hidden files", Windows)

	if !strings.Contains(p, "Windows (Command Prompt)") {
		t.Errorf("prompt missing Windows OS label:\n%s", p)
	}
	if !strings.Contains(p, "dir /a") {
		t.Errorf("prompt missing Windows example command:\n%s", p)
	}
}

func TestBuildMacOS(t *testing.T) {
	p := Build("show disk usage", MacOS)

	if !strings.Contains(p, "macOS (Terminal)") {
		t.Errorf("prompt missing macOS label:\n%s", p)
	}
	if !strings.Contains(p, "ls -la") {
		t.Errorf("macOS prompt should use the unix example command:\n%s", p)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build("show disk usage", Linux)
	b := Build("show disk usage", Linux)
	if a != b {
		t.Error("Build is not deterministic for identical input")
	}
}

func TestBuildInstructionIsFinalTaskLine(t *testing.T) {
	p := Build("delete temp files", Linux)

	idx := strings.LastIndex(p, "Task: delete temp files")
	if idx == -1 {
		t.Fatalf("instruction task line not found:\n%s", p)
	}
	if strings.Contains(p[idx:], "Example:") {
		t.Errorf("instruction should come after the worked example:\n%s", p)
	}
}
