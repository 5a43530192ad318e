package apply_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caeli-works/caeli-api-types/sources"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	"github.com/caeli-works/caeli/cmd/caeli/rest/mock"
	source_apply "github.com/caeli-works/caeli/cmd/caeli/subcommands/source/apply"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/internal/commandline"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/logger"
)

const sourceYaml = `
name: corporate wiki
kind: website
url: https://wiki.example.com
enabled: true
crawl:
    interval: 24h
    depth: 3
    includePatterns:
        - /pages/*
`

var wantSpec = sources.Spec{
	Name:    "corporate wiki",
	Kind:    sources.KindWebsite,
	URL:     "https://wiki.example.com",
	Enabled: true,
	Crawl: sources.CrawlConfig{
		Interval:        "24h",
		Depth:           3,
		IncludePatterns: []string{"/pages/*"},
	},
}

func TestApplyCommand_register(t *testing.T) {
	file := filepath.Join(t.TempDir(), "source.yaml")
	if err := os.WriteFile(file, []byte(sourceYaml), 0644); err != nil {
		t.Fatal(err)
	}

	client := mock.New(t)
	client.Impl.RegisterSource = func(_ context.Context, spec sources.Spec) (sources.Detail, error) {
		return sources.Detail{
			Summary: sources.Summary{
				Id: "source-1", Name: spec.Name, Kind: spec.Kind,
				URL: spec.URL, Enabled: spec.Enabled,
			},
			Crawl: spec.Crawl,
		}, nil
	}

	cl := commandline.MockCommandline[source_apply.Flags]{
		Fullname_: "caeli source apply",
		Stdout_:   new(strings.Builder),
		Stderr_:   new(strings.Builder),
		Flags_:    source_apply.Flags{},
		Args_: map[string][]string{
			source_apply.ARG_SOURCE_FILE: {file},
		},
	}

	testee := source_apply.Task()
	if err := testee(
		context.Background(), logger.Null(), env.CaeliEnv{}, client, cl, []any{},
	); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	if len(client.Calls.RegisterSource) != 1 {
		t.Fatalf("RegisterSource should be called once (actual: %d)", len(client.Calls.RegisterSource))
	}
	if got := client.Calls.RegisterSource[0]; !got.Equal(wantSpec) {
		t.Errorf(
			"wrong spec is passed into client:\nactual = %+v\nexpected = %+v",
			got, wantSpec,
		)
	}
}

func TestApplyCommand_updateWithId(t *testing.T) {
	client := mock.New(t)
	client.Impl.UpdateSource = func(_ context.Context, sourceId string, spec sources.Spec) (sources.Detail, error) {
		return sources.Detail{
			Summary: sources.Summary{
				Id: sourceId, Name: spec.Name, Kind: spec.Kind,
				URL: spec.URL, Enabled: spec.Enabled,
			},
			Crawl: spec.Crawl,
		}, nil
	}

	cl := commandline.MockCommandline[source_apply.Flags]{
		Fullname_: "caeli source apply",
		Stdin_:    strings.NewReader(sourceYaml),
		Stdout_:   new(strings.Builder),
		Stderr_:   new(strings.Builder),
		Flags_:    source_apply.Flags{Id: "source-9"},
		Args_: map[string][]string{
			source_apply.ARG_SOURCE_FILE: {"-"},
		},
	}

	testee := source_apply.Task()
	if err := testee(
		context.Background(), logger.Null(), env.CaeliEnv{}, client, cl, []any{},
	); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	if len(client.Calls.UpdateSource) != 1 {
		t.Fatalf("UpdateSource should be called once (actual: %d)", len(client.Calls.UpdateSource))
	}
	call := client.Calls.UpdateSource[0]
	if call.SourceId != "source-9" {
		t.Errorf("wrong source id: %s", call.SourceId)
	}
	if !call.Spec.Equal(wantSpec) {
		t.Errorf(
			"wrong spec is passed into client:\nactual = %+v\nexpected = %+v",
			call.Spec, wantSpec,
		)
	}
}

func TestApplyCommand_brokenFileIsAnError(t *testing.T) {
	client := mock.New(t)

	cl := commandline.MockCommandline[source_apply.Flags]{
		Fullname_: "caeli source apply",
		Stdin_:    strings.NewReader(`: not yaml :`),
		Stdout_:   new(strings.Builder),
		Stderr_:   new(strings.Builder),
		Flags_:    source_apply.Flags{},
		Args_: map[string][]string{
			source_apply.ARG_SOURCE_FILE: {"-"},
		},
	}

	testee := source_apply.Task()
	if err := testee(
		context.Background(), logger.Null(), env.CaeliEnv{}, client, cl, []any{},
	); err == nil {
		t.Fatal("a broken definition file should be an error")
	}
}
