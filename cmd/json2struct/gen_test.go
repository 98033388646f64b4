package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/json2struct/internal/config"
	"github.com/usestring/json2struct/pkg/gostruct"
)

const channelJSON = `{
  "id": "2",
  "href": "https://localhost:5010/api/v1/channel/2",
  "public_read": true,
  "sequenced": true,
  "retention": {"min_age_days": 0, "max_age_days": 99999, "auto_prune": true},
  "access_tokens": [{"id": "1", "token": "abc", "description": "Owner", "can_read": true, "can_write": true}],
  "head": 0
}`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"J2S_TAG_KEY", "J2S_INDENT", "J2S_GOFMT", "J2S_MAX_INPUT_BYTES", "J2S_WORKERS", "LOG_FILE"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGen_Stdin(t *testing.T) {
	clearEnv(t)

	out, err := run(t, channelJSON, "gen", "--name", "ChannelReply")
	require.NoError(t, err)

	assert.Equal(t, "type ChannelReply struct {\n"+
		"    Id string `json:\"id\"`\n"+
		"    Href string `json:\"href\"`\n"+
		"    PublicRead bool `json:\"public_read\"`\n"+
		"    Sequenced bool `json:\"sequenced\"`\n"+
		"    Retention struct {\n"+
		"        MinAgeDays int `json:\"min_age_days\"`\n"+
		"        MaxAgeDays int `json:\"max_age_days\"`\n"+
		"        AutoPrune bool `json:\"auto_prune\"`\n"+
		"    } `json:\"retention\"`\n"+
		"    AccessTokens []struct {\n"+
		"        Id string `json:\"id\"`\n"+
		"        Token string `json:\"token\"`\n"+
		"        Description string `json:\"description\"`\n"+
		"        CanRead bool `json:\"can_read\"`\n"+
		"        CanWrite bool `json:\"can_write\"`\n"+
		"    } `json:\"access_tokens\"`\n"+
		"    Head int `json:\"head\"`\n"+
		"}\n", out)
}

func TestGen_FilesInArgumentOrder(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	first := writeFile(t, dir, "channel-reply.json", `{"id": "2"}`)
	second := writeFile(t, dir, "token_list.yaml", "tokens:\n  - id: 1\n")

	out, err := run(t, "", "gen", "--package", "models", "--verify", second, first)
	require.NoError(t, err)

	assert.Equal(t, "package models\n\n"+
		"type TokenList struct {\n"+
		"    Tokens []struct {\n"+
		"        Id int `json:\"id\"`\n"+
		"    } `json:\"tokens\"`\n"+
		"}\n"+
		"\n"+
		"type ChannelReply struct {\n"+
		"    Id string `json:\"id\"`\n"+
		"}\n", out)
}

func TestGen_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("J2S_TAG_KEY", "yaml")

	out, err := run(t, `{"a_b": 1}`, "gen", "--indent", "0")
	require.NoError(t, err)
	assert.Equal(t, "type Root struct {\n\tAB int `yaml:\"a_b\"`\n}\n", out)

	out, err = run(t, `{"a_b": 1}`, "gen", "--tag", "json", "--gofmt")
	require.NoError(t, err)
	assert.Equal(t, "type Root struct {\n\tAB int `json:\"a_b\"`\n}\n", out)
}

func TestGen_Select(t *testing.T) {
	clearEnv(t)

	out, err := run(t, channelJSON, "gen", "-n", "access_token", "-s", ".access_tokens[0]")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "type AccessToken struct {\n    Id string `json:\"id\"`\n"), out)
}

func TestGen_SchemaOutput(t *testing.T) {
	clearEnv(t)

	out, err := run(t, `{"id": "2", "ratio": 0.5}`, "gen", "--output", "schema", "--name", "reply")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Reply", doc["title"])
	assert.Equal(t, []any{"id", "ratio"}, doc["required"])
}

func TestGen_Errors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"empty sequence", `{"tags": []}`, []string{"gen"}, "empty sequence"},
		{"null value", `{"a": null}`, []string{"gen"}, "unsupported value kind null"},
		{"scalar root", `[1, 2]`, []string{"gen"}, "unsupported value kind"},
		{"bad format", `{}`, []string{"gen", "--format", "xml"}, "unknown sample format"},
		{"bad output", `{}`, []string{"gen", "--output", "ts"}, "unknown output"},
		{"bad select", `{"a": {}}`, []string{"gen", "--select", ".b"}, "no key"},
		{"empty input", "  ", []string{"gen"}, "empty sample"},
		{"missing file", "", []string{"gen", "does-not-exist.json"}, "does-not-exist.json"},
		{"backtick tag", `{"a": 1}`, []string{"gen", "--tag", "js`on"}, "invalid tag key"},
		{"colon tag", `{"a": 1}`, []string{"gen", "--tag", "a:b"}, "invalid tag key"},
		{"negative indent", `{"a": 1}`, []string{"gen", "--indent=-2"}, "invalid indent width"},
		{"dashed package", `{"a": 1}`, []string{"gen", "--package", "my-pkg"}, "invalid package name"},
		{"injected package", `{"a": 1}`, []string{"gen", "--package", "x\nfunc init() {}"}, "invalid package name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGen_PartialFailure(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"a": 1}`)
	bad := writeFile(t, dir, "bad.json", `{"a": []}`)

	out, err := run(t, "", "gen", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 inputs failed")
	assert.Equal(t, "type Good struct {\n    A int `json:\"a\"`\n}\n", out)
}

func TestGen_SingleFailureIsNotLoggedTwice(t *testing.T) {
	clearEnv(t)

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	a := &app{cfg: config.Load()}
	f := &genFlags{format: "auto", output: outputGo}

	err := runGen(context.Background(), a, f, nil, strings.NewReader(`{"a": []}`), &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gostruct.ErrEmptySequence)
	assert.Empty(t, logs.String())

	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"a": 1}`)
	bad := writeFile(t, dir, "bad.json", `{"a": []}`)
	err = runGen(context.Background(), a, f, []string{good, bad}, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, logs.String(), "generation failed")
	assert.Contains(t, logs.String(), "bad.json")
}

func TestGen_InputLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("J2S_MAX_INPUT_BYTES", "4")

	_, err := run(t, `{"abc": 1}`, "gen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 4 bytes")
}

func TestTypeNameFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"-", "Root"},
		{"channel.json", "channel"},
		{"dir/channel-reply.json", "channel_reply"},
		{"access tokens.yaml", "access_tokens"},
		{"2024.json", "Root"},
		{"___.json", "Root"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, typeNameFor(tt.path))
		})
	}
}
