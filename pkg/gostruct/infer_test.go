package gostruct

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/json2struct/pkg/sample"
)

func decode(t *testing.T, s string) sample.Value {
	t.Helper()
	v, err := sample.DecodeJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestInfer_Channel(t *testing.T) {
	v := decode(t, `{"public_read": true, "head": 0, "access_tokens": [{"id": "2", "can_read": true}]}`)

	got, err := Infer(v, "Channel", 0)
	require.NoError(t, err)

	expected := "type Channel struct {\n" +
		"    PublicRead bool `json:\"public_read\"`\n" +
		"    Head int `json:\"head\"`\n" +
		"    AccessTokens []struct {\n" +
		"        Id string `json:\"id\"`\n" +
		"        CanRead bool `json:\"can_read\"`\n" +
		"    } `json:\"access_tokens\"`\n" +
		"}\n"
	assert.Equal(t, expected, got)
}

func TestInfer_NestedVersusList(t *testing.T) {
	v := decode(t, `{"retention": {"auto_prune": true}, "access_tokens": [{"token": "x"}]}`)

	got, err := Infer(v, "reply", 0)
	require.NoError(t, err)

	assert.Contains(t, got, "type Reply struct {\n")
	assert.Contains(t, got, "    Retention struct {\n        AutoPrune bool `json:\"auto_prune\"`\n    } `json:\"retention\"`\n")
	assert.Contains(t, got, "    AccessTokens []struct {\n        Token string `json:\"token\"`\n    } `json:\"access_tokens\"`\n")
}

func TestInfer_NestedDepth(t *testing.T) {
	v := decode(t, `{"a": {"b": 1}}`)

	got, err := Infer(v.Fields()[0].Value, "a", 2)
	require.NoError(t, err)

	expected := "        A struct {\n" +
		"            B int `json:\"b\"`\n" +
		"        } `json:\"a\"`\n"
	assert.Equal(t, expected, got)
}

func TestInfer_ListUsesFirstElementOnly(t *testing.T) {
	v := decode(t, `{"items": [{"first": 1}, {"second": "x", "third": true}]}`)

	got, err := Infer(v, "Page", 0)
	require.NoError(t, err)
	assert.Contains(t, got, "First int")
	assert.NotContains(t, got, "Second")
	assert.NotContains(t, got, "Third")
}

func TestInfer_FieldOrderMatchesKeyOrder(t *testing.T) {
	v := decode(t, `{"zulu": 1, "alpha": "a", "mike": true, "bravo": {"x": 1}, "echo": 2}`)

	got, err := Infer(v, "Ordered", 0)
	require.NoError(t, err)

	var names []string
	for _, line := range strings.Split(got, "\n") {
		// top-level fields are indented by exactly one level
		if strings.HasPrefix(line, "    ") && !strings.HasPrefix(line, "     ") && !strings.HasPrefix(line, "    }") {
			names = append(names, strings.Fields(line)[0])
		}
	}
	assert.Equal(t, []string{"Zulu", "Alpha", "Mike", "Bravo", "Echo"}, names)
}

func TestInfer_TagsCarryOriginalKeys(t *testing.T) {
	v := decode(t, `{"min_age_days": 0, "__weird__key": "x", "HTTP_code": 200, "nested_obj": {"inner_key": true}}`)

	got, err := Infer(v, "Tags", 0)
	require.NoError(t, err)

	for _, key := range []string{"min_age_days", "__weird__key", "HTTP_code", "nested_obj", "inner_key"} {
		assert.Contains(t, got, "`json:\""+key+"\"`")
	}
	assert.Contains(t, got, "WeirdKey string `json:\"__weird__key\"`")
	assert.Contains(t, got, "HTTPCode int `json:\"HTTP_code\"`")
}

func TestInfer_TagKeepsUnescapedKey(t *testing.T) {
	got, err := Infer(decode(t, `{"caf\u00e9_name": "x"}`), "Menu", 0)
	require.NoError(t, err)
	assert.Equal(t, "type Menu struct {\n    CaféName string `json:\"café_name\"`\n}\n", got)
}

func TestInfer_EmptyObjects(t *testing.T) {
	got, err := Infer(decode(t, `{}`), "Empty", 0)
	require.NoError(t, err)
	assert.Equal(t, "type Empty struct {\n}\n", got)

	got, err = Infer(decode(t, `{"meta": {}}`), "Holder", 0)
	require.NoError(t, err)
	assert.Equal(t, "type Holder struct {\n    Meta struct {\n    } `json:\"meta\"`\n}\n", got)
}

func TestInfer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		root    string
		target  error
		path    string
		keyWant string
	}{
		{"float field", `{"id": "a", "ratio": 0.5}`, "Root", ErrUnsupportedValueKind, "ratio", "ratio"},
		{"null field", `{"deleted_at": null}`, "Root", ErrUnsupportedValueKind, "deleted_at", "deleted_at"},
		{"nested float", `{"retention": {"max": 1.5}}`, "Root", ErrUnsupportedValueKind, "retention.max", "max"},
		{"float in list element", `{"rows": [{"v": 2.5}]}`, "Root", ErrUnsupportedValueKind, "rows[0].v", "v"},
		{"list of scalars", `{"tags": ["a", "b"]}`, "Root", ErrUnsupportedValueKind, "tags[0]", "tags"},
		{"root array", `[{"a": 1}]`, "Root", ErrUnsupportedValueKind, "", "Root"},
		{"empty sequence", `{"access_tokens": []}`, "Root", ErrEmptySequence, "access_tokens", "access_tokens"},
		{"nested empty sequence", `{"a": {"b": []}}`, "Root", ErrEmptySequence, "a.b", "b"},
		{"empty key", `{"": 1}`, "Root", ErrEmptyIdentifier, `[""]`, ""},
		{"nested empty key", `{"a": {"": 1}}`, "Root", ErrEmptyIdentifier, `a[""]`, ""},
		{"integer beyond int64", `{"big": 99999999999999999999999}`, "Root", ErrUnsupportedValueKind, "big", "big"},
		{"underscore key", `{"___": 1}`, "Root", ErrEmptyIdentifier, "___", "___"},
		{"empty root name", `{"a": 1}`, "", ErrEmptyIdentifier, "", ""},
		{"dashed key", `{"content-type": "x"}`, "Root", ErrInvalidIdentifier, "content-type", "content-type"},
		{"digit key", `{"1st": "x"}`, "Root", ErrInvalidIdentifier, "1st", "1st"},
		{"escaped backslash key", `{"a\\u0041": 1}`, "Root", ErrInvalidIdentifier, `a\u0041`, `a\u0041`},
		{"colliding keys", `{"a_b": 1, "aB": 2}`, "Root", ErrDuplicateIdentifier, "aB", "aB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Infer(decode(t, tt.input), tt.root, 0)
			require.Error(t, err)
			assert.Empty(t, got, "no partial output on error")
			assert.ErrorIs(t, err, tt.target)

			switch e := err.(type) {
			case *UnsupportedValueKindError:
				assert.Equal(t, tt.path, e.Path)
				assert.Equal(t, tt.keyWant, e.Key)
			case *EmptySequenceError:
				assert.Equal(t, tt.path, e.Path)
				assert.Equal(t, tt.keyWant, e.Key)
			case *IdentifierError:
				assert.Equal(t, tt.path, e.Path)
				assert.Equal(t, tt.keyWant, e.Key)
			case *DuplicateIdentifierError:
				assert.Equal(t, tt.path, e.Path)
				assert.Equal(t, tt.keyWant, e.Key)
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestInfer_FloatErrorNamesKey(t *testing.T) {
	_, err := Infer(decode(t, `{"price": 9.99}`), "Item", 0)

	var kindErr *UnsupportedValueKindError
	require.True(t, errors.As(err, &kindErr))
	assert.Equal(t, "price", kindErr.Key)
	assert.Equal(t, "float", kindErr.Kind)
	assert.Contains(t, err.Error(), `"price"`)
}

func TestGenerate_Options(t *testing.T) {
	v := decode(t, `{"a_b": 1, "c": {"d": "x"}}`)

	got, err := Generate(v, "T", &Options{TagKey: "yaml", IndentWidth: 2})
	require.NoError(t, err)
	expected := "type T struct {\n" +
		"  AB int `yaml:\"a_b\"`\n" +
		"  C struct {\n" +
		"    D string `yaml:\"d\"`\n" +
		"  } `yaml:\"c\"`\n" +
		"}\n"
	assert.Equal(t, expected, got)

	got, err = Generate(v, "T", &Options{})
	require.NoError(t, err)
	assert.Contains(t, got, "\tAB int `json:\"a_b\"`\n")
	assert.Contains(t, got, "\t\tD string `json:\"d\"`\n")
}

func TestGenerate_GofmtMatchesHandWrittenReply(t *testing.T) {
	input := `{"id":"2vkapEui","href":"https://localhost:5010/api/v1/channel/2vkapEui","public_read":true,"public_write":true,"sequenced":true,"locked":false,"head":0,"retention":{"min_age_days":0,"max_age_days":99999,"auto_prune":true},"access_tokens":[{"id":"2","token":"cadpwRhA9H6N","description":"Owner","can_read":true,"can_write":true}]}`

	got, err := Generate(decode(t, input), "ChannelReply", &Options{Gofmt: true})
	require.NoError(t, err)

	expected := "type ChannelReply struct {\n" +
		"\tId          string `json:\"id\"`\n" +
		"\tHref        string `json:\"href\"`\n" +
		"\tPublicRead  bool   `json:\"public_read\"`\n" +
		"\tPublicWrite bool   `json:\"public_write\"`\n" +
		"\tSequenced   bool   `json:\"sequenced\"`\n" +
		"\tLocked      bool   `json:\"locked\"`\n" +
		"\tHead        int    `json:\"head\"`\n" +
		"\tRetention   struct {\n" +
		"\t\tMinAgeDays int  `json:\"min_age_days\"`\n" +
		"\t\tMaxAgeDays int  `json:\"max_age_days\"`\n" +
		"\t\tAutoPrune  bool `json:\"auto_prune\"`\n" +
		"\t} `json:\"retention\"`\n" +
		"\tAccessTokens []struct {\n" +
		"\t\tId          string `json:\"id\"`\n" +
		"\t\tToken       string `json:\"token\"`\n" +
		"\t\tDescription string `json:\"description\"`\n" +
		"\t\tCanRead     bool   `json:\"can_read\"`\n" +
		"\t\tCanWrite    bool   `json:\"can_write\"`\n" +
		"\t} `json:\"access_tokens\"`\n" +
		"}\n"
	assert.Equal(t, expected, got)
}

func TestEmitter_ConcurrentUse(t *testing.T) {
	e, err := NewEmitter(nil)
	require.NoError(t, err)
	inputs := []string{`{"a": 1}`, `{"b": "x"}`, `{"c": {"d": true}}`, `{"e": [{"f": 1}]}`}

	results := make([]string, len(inputs))
	done := make(chan int)
	for i, in := range inputs {
		v := decode(t, in)
		go func() {
			out, err := e.Generate(v, "Root")
			if err == nil {
				results[i] = out
			}
			done <- i
		}()
	}
	for range inputs {
		<-done
	}

	for i, in := range inputs {
		want, err := e.Generate(decode(t, in), "Root")
		require.NoError(t, err)
		assert.Equal(t, want, results[i])
	}
}

func TestInfer_EmptyKeyErrorDiffersFromEmptyRootName(t *testing.T) {
	_, keyErr := Infer(decode(t, `{"": 1}`), "Root", 0)
	_, rootErr := Infer(decode(t, `{"a": 1}`), "", 0)
	require.Error(t, keyErr)
	require.Error(t, rootErr)

	assert.Contains(t, keyErr.Error(), `[""]`)
	assert.Contains(t, rootErr.Error(), "<root>")
	assert.NotEqual(t, keyErr.Error(), rootErr.Error())
}

func TestInfer_IntegerOutOfRangeNamesKind(t *testing.T) {
	_, err := Infer(decode(t, `{"id": 1, "seq": -99999999999999999999}`), "Event", 0)

	var kindErr *UnsupportedValueKindError
	require.True(t, errors.As(err, &kindErr))
	assert.Equal(t, "seq", kindErr.Key)
	assert.Equal(t, "integer out of range", kindErr.Kind)
}

func TestNewEmitter_RejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		opts   *Options
		target error
	}{
		{"backtick", &Options{TagKey: "js`on"}, ErrInvalidTagKey},
		{"quote", &Options{TagKey: `js"on`}, ErrInvalidTagKey},
		{"colon", &Options{TagKey: "js:on"}, ErrInvalidTagKey},
		{"space", &Options{TagKey: "js on"}, ErrInvalidTagKey},
		{"newline", &Options{TagKey: "json\n"}, ErrInvalidTagKey},
		{"delete", &Options{TagKey: "json\x7f"}, ErrInvalidTagKey},
		{"negative indent", &Options{IndentWidth: -1}, ErrInvalidIndent},
	}

	v := decode(t, `{"a": 1}`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEmitter(tt.opts)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, tt.target)

			out, err := Generate(v, "T", tt.opts)
			assert.Empty(t, out)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestNewEmitter_AcceptsTagKeys(t *testing.T) {
	v := decode(t, `{"a": 1}`)
	for _, key := range []string{"", "json", "yaml", "mapstructure", "db-col", "toml_v2"} {
		out, err := Generate(v, "T", &Options{TagKey: key, IndentWidth: 4})
		require.NoError(t, err, key)
		if key == "" {
			key = "json"
		}
		assert.Contains(t, out, "`"+key+":\"a\"`")
	}
}

func TestCheckPackageName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"models", true},
		{"api_v2", true},
		{"", false},
		{"_", false},
		{"my-pkg", false},
		{"2fast", false},
		{"models\n\nfunc init() {}", false},
		{"type", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPackageName(tt.name)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidPackageName)
		})
	}
}
