// SPDX-License-Identifier: MPL-2.0

package copier_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Specter099/ssmtree/internal/copier"
	"github.com/Specter099/ssmtree/internal/param"
	"github.com/Specter099/ssmtree/internal/store"
)

func mkParam(t *testing.T, path, value, kind string) param.Parameter {
	t.Helper()
	p, err := param.New(path, value, kind, 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("param.New(%q) error = %v", path, err)
	}
	return p
}

// fakeSink records writes and fails the paths listed in failPaths.
type fakeSink struct {
	puts      []store.PutInput
	failPaths map[string]error
}

func (f *fakeSink) Put(_ context.Context, in store.PutInput) error {
	if err, ok := f.failPaths[in.Path]; ok {
		return err
	}
	f.puts = append(f.puts, in)
	return nil
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, source, dest, want string
	}{
		{"/prod/db/host", "/prod", "/staging", "/staging/db/host"},
		{"/a/b/c/d", "/a/b", "/x/y", "/x/y/c/d"},
		{"/prod", "/prod", "/staging", "/staging"},
		{"/other/key", "/prod", "/staging", "/other/key"},
		{"/prod/key", "/prod/", "/staging/", "/staging/key"},
	}
	for _, tt := range tests {
		if got := copier.Rewrite(tt.path, tt.source, tt.dest); got != tt.want {
			t.Errorf("Rewrite(%q, %q, %q) = %q, want %q", tt.path, tt.source, tt.dest, got, tt.want)
		}
	}
}

func TestPlan_OrderAndRewrite(t *testing.T) {
	t.Parallel()

	params := []param.Parameter{
		mkParam(t, "/prod/db/port", "5432", "String"),
		mkParam(t, "/prod/db/host", "h", "String"),
	}
	got := copier.Plan(params, "/prod", "/staging")
	want := []string{"/staging/db/host", "/staging/db/port"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Plan() = %v, want %v", got, want)
	}
}

func TestPlan_NoSideEffects(t *testing.T) {
	t.Parallel()

	params := []param.Parameter{
		mkParam(t, "/prod/b", "1", "String"),
		mkParam(t, "/prod/a", "2", "String"),
	}
	copier.Plan(params, "/prod", "/staging")
	if params[0].Path != "/prod/b" {
		t.Error("Plan() reordered its input slice")
	}
}

func TestExecute_WritesAll(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	params := []param.Parameter{
		mkParam(t, "/prod/db/host", "h", "String"),
		mkParam(t, "/prod/db/port", "5432", "String"),
	}
	res := copier.Execute(context.Background(), params, "/prod", "/staging", sink, copier.Options{})

	want := []string{"/staging/db/host", "/staging/db/port"}
	if !reflect.DeepEqual(res.Written, want) {
		t.Errorf("Written = %v, want %v", res.Written, want)
	}
	if len(res.Failed) != 0 {
		t.Errorf("Failed = %v, want empty", res.Failed)
	}
	if len(sink.puts) != 2 {
		t.Fatalf("sink received %d writes, want 2", len(sink.puts))
	}
	if sink.puts[0].Value != "h" || sink.puts[0].Path != "/staging/db/host" {
		t.Errorf("first write = %+v", sink.puts[0])
	}
}

func TestExecute_PartialFailureContinues(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{failPaths: map[string]error{
		"/staging/db/port": errors.New("ParameterAlreadyExists: parameter already exists"),
	}}
	params := []param.Parameter{
		mkParam(t, "/prod/db/host", "h", "String"),
		mkParam(t, "/prod/db/port", "5432", "String"),
		mkParam(t, "/prod/db/user", "admin", "String"),
	}
	res := copier.Execute(context.Background(), params, "/prod", "/staging", sink, copier.Options{})

	wantWritten := []string{"/staging/db/host", "/staging/db/user"}
	if !reflect.DeepEqual(res.Written, wantWritten) {
		t.Errorf("Written = %v, want %v", res.Written, wantWritten)
	}
	if len(res.Failed) != 1 || res.Failed[0].Path != "/staging/db/port" {
		t.Fatalf("Failed = %+v, want single /staging/db/port entry", res.Failed)
	}
	if res.Failed[0].Reason == "" {
		t.Error("failure reason is empty")
	}
}

func TestExecute_TotalFailureIsStillAResult(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{failPaths: map[string]error{
		"/staging/a": errors.New("denied"),
		"/staging/b": errors.New("denied"),
	}}
	params := []param.Parameter{
		mkParam(t, "/prod/a", "1", "String"),
		mkParam(t, "/prod/b", "2", "String"),
	}
	res := copier.Execute(context.Background(), params, "/prod", "/staging", sink, copier.Options{})
	if len(res.Written) != 0 {
		t.Errorf("Written = %v, want empty", res.Written)
	}
	if len(res.Failed) != 2 {
		t.Errorf("Failed = %v, want 2 entries", res.Failed)
	}
}

func TestExecute_KMSKeyOnlyForSecureStrings(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	params := []param.Parameter{
		mkParam(t, "/prod/db/host", "h", "String"),
		mkParam(t, "/prod/db/password", "s3cret", "SecureString"),
	}
	copier.Execute(context.Background(), params, "/prod", "/staging", sink, copier.Options{
		KMSKeyID: "alias/my-key",
	})

	for _, put := range sink.puts {
		switch put.Path {
		case "/staging/db/host":
			if put.KeyID != "" {
				t.Errorf("plain String write carried KeyID %q", put.KeyID)
			}
		case "/staging/db/password":
			if put.KeyID != "alias/my-key" {
				t.Errorf("SecureString write KeyID = %q, want alias/my-key", put.KeyID)
			}
		}
	}
}

func TestExecute_OverwritePassThrough(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	params := []param.Parameter{mkParam(t, "/prod/a", "1", "String")}
	copier.Execute(context.Background(), params, "/prod", "/staging", sink, copier.Options{Overwrite: true})
	if !sink.puts[0].Overwrite {
		t.Error("Overwrite flag not passed through to the sink")
	}
}

func TestExecute_ProgressReported(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	params := []param.Parameter{
		mkParam(t, "/prod/a", "1", "String"),
		mkParam(t, "/prod/b", "2", "String"),
	}
	var calls [][2]int
	copier.Execute(context.Background(), params, "/prod", "/staging", sink, copier.Options{
		Progress: func(done, total int) { calls = append(calls, [2]int{done, total}) },
	})
	want := [][2]int{{1, 2}, {2, 2}}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("progress calls = %v, want %v", calls, want)
	}
}
