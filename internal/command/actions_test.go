package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Alec-Hermesmeyer/voice-cli/internal/platform"
)

// fakeRunner records commands instead of spawning processes.
type fakeRunner struct {
	ran     []platform.Command
	started []platform.Command
	err     error
}

func (f *fakeRunner) Run(_ context.Context, cmd platform.Command) error {
	f.ran = append(f.ran, cmd)
	return f.err
}

func (f *fakeRunner) Start(cmd platform.Command) error {
	f.started = append(f.started, cmd)
	return f.err
}

func testEnv(t *testing.T, runner *fakeRunner) Env {
	t.Helper()
	return Env{
		Resolver: platform.NewResolverFor(platform.PlatformLinux),
		Runner:   runner,
		Home:     t.TempDir(),
		Now: func() time.Time {
			return time.Date(2024, time.March, 5, 15, 4, 0, 0, time.UTC)
		},
	}
}

func TestExecuteTime(t *testing.T) {
	res := Execute(context.Background(), Command{Kind: KindTime}, testEnv(t, &fakeRunner{}))
	if !res.OK {
		t.Fatal("time action failed")
	}
	if res.Message != "The time is 3:04 PM" {
		t.Errorf("message = %q", res.Message)
	}
	if res.Speech != res.Message {
		t.Errorf("speech %q differs from message %q", res.Speech, res.Message)
	}
}

func TestExecuteDate(t *testing.T) {
	res := Execute(context.Background(), Command{Kind: KindDate}, testEnv(t, &fakeRunner{}))
	if !res.OK {
		t.Fatal("date action failed")
	}
	if res.Message != "Today is Tuesday, March 5, 2024" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestExecuteOpenFolder(t *testing.T) {
	t.Run("folder present", func(t *testing.T) {
		runner := &fakeRunner{}
		env := testEnv(t, runner)
		path := filepath.Join(env.Home, "Downloads")
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatal(err)
		}

		cmd := Command{Kind: KindOpenFolder, Target: "Downloads", Response: "Opening your downloads folder"}
		res := Execute(context.Background(), cmd, env)

		if !res.OK {
			t.Fatal("expected success")
		}
		if want := "Opened folder: " + path; res.Message != want {
			t.Errorf("message = %q, want %q", res.Message, want)
		}
		if res.Speech != cmd.Response {
			t.Errorf("speech = %q, want %q", res.Speech, cmd.Response)
		}
		if len(runner.ran) != 1 {
			t.Fatalf("runner invoked %d times, want 1", len(runner.ran))
		}
		if got := runner.ran[0].Args[len(runner.ran[0].Args)-1]; got != path {
			t.Errorf("opened %q, want %q", got, path)
		}
	})

	t.Run("folder absent", func(t *testing.T) {
		runner := &fakeRunner{}
		cmd := Command{Kind: KindOpenFolder, Target: "Downloads"}
		res := Execute(context.Background(), cmd, testEnv(t, runner))

		if res.OK {
			t.Fatal("expected failure")
		}
		if res.Message != "Folder not found" {
			t.Errorf("message = %q", res.Message)
		}
		// Nothing should be spawned when the target is missing.
		if len(runner.ran) != 0 {
			t.Errorf("runner invoked %d times, want 0", len(runner.ran))
		}
	})
}

func TestExecuteOpenURL(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		runner := &fakeRunner{}
		cmd := Command{Kind: KindOpenURL, Target: "https://www.google.com", Response: "Opening your browser"}
		res := Execute(context.Background(), cmd, testEnv(t, runner))

		if !res.OK {
			t.Fatal("expected success")
		}
		if len(runner.ran) != 1 {
			t.Fatalf("runner invoked %d times, want 1", len(runner.ran))
		}
	})

	t.Run("process failure", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("exit status 4")}
		cmd := Command{Kind: KindOpenURL, Target: "https://www.google.com"}
		res := Execute(context.Background(), cmd, testEnv(t, runner))

		if res.OK {
			t.Fatal("expected failure")
		}
		if !strings.Contains(res.Message, "Could not open") {
			t.Errorf("message = %q", res.Message)
		}
	})
}

func TestExecuteOpenApp(t *testing.T) {
	runner := &fakeRunner{}
	cmd := Command{Kind: KindOpenApp, Target: "calculator", Response: "Opening the calculator"}
	res := Execute(context.Background(), cmd, testEnv(t, runner))

	if !res.OK {
		t.Fatal("expected success")
	}
	if len(runner.ran) != 1 {
		t.Fatalf("runner invoked %d times, want 1", len(runner.ran))
	}

	res = Execute(context.Background(), Command{Kind: KindOpenApp, Target: "spreadsheet"}, testEnv(t, runner))
	if res.OK {
		t.Fatal("unmapped app should fail")
	}
}

func TestExecuteOpenTerminal(t *testing.T) {
	runner := &fakeRunner{}
	res := Execute(context.Background(), Command{Kind: KindOpenTerminal, Response: "Opening a terminal"}, testEnv(t, runner))

	if !res.OK {
		t.Fatal("expected success")
	}
	// Terminals are started, not awaited.
	if len(runner.started) != 1 || len(runner.ran) != 0 {
		t.Errorf("started=%d ran=%d, want 1/0", len(runner.started), len(runner.ran))
	}
}

func TestExecuteExitAndHelp(t *testing.T) {
	res := Execute(context.Background(), Command{Kind: KindExit, Response: "Goodbye!"}, testEnv(t, &fakeRunner{}))
	if !res.Exit || !res.OK {
		t.Errorf("exit result = %+v", res)
	}

	res = Execute(context.Background(), Command{Kind: KindHelp}, testEnv(t, &fakeRunner{}))
	if !res.ShowHelp || !res.OK {
		t.Errorf("help result = %+v", res)
	}
}
