package coerce

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bdfrgen/pkg/schema"
)

var (
	boolField  = schema.Field{Name: "no_dupes", Kind: schema.KindBool}
	intField   = schema.Field{Name: "limit", Kind: schema.KindInt}
	levelField = schema.Field{Name: "verbose", Kind: schema.KindInt, Flag: schema.Flag{Name: "-v", Repeat: true}}
	floatField = schema.Field{Name: "min_score_ratio", Kind: schema.KindFloat}
	strField   = schema.Field{Name: "search", Kind: schema.KindString}
	listField  = schema.Field{Name: "subreddit", Kind: schema.KindStringList}
	enumField  = schema.Field{
		Name: "sort",
		Kind: schema.KindEnum,
		Members: []schema.Member{
			{Name: "HOT", Value: "hot"},
			{Name: "TOP", Value: "top"},
		},
	}
	nestedField = schema.Field{Name: "download_config", Kind: schema.KindNested}
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		field   schema.Field
		raw     string
		want    any
		wantErr error
	}{
		{name: "bool lower", field: boolField, raw: "true", want: true},
		{name: "bool title", field: boolField, raw: "False", want: false},
		{name: "bool upper rejected", field: boolField, raw: "TRUE", wantErr: ErrInvalidValue},
		{name: "bool empty rejected", field: boolField, raw: "", wantErr: ErrInvalidValue},
		{name: "int", field: intField, raw: "42", want: int64(42)},
		{name: "int empty is null", field: intField, raw: "", want: nil},
		{name: "int sign rejected", field: intField, raw: "-4", wantErr: ErrInvalidValue},
		{name: "int letters rejected", field: intField, raw: "4a", wantErr: ErrInvalidValue},
		{name: "int overflow rejected", field: intField, raw: "99999999999999999999", wantErr: ErrInvalidValue},
		{name: "repeat level", field: levelField, raw: "3", want: int64(3)},
		{name: "repeat level at max", field: levelField, raw: "16", want: int64(schema.MaxRepeat)},
		{name: "repeat level above max", field: levelField, raw: "17", wantErr: ErrInvalidValue},
		{name: "repeat level huge", field: levelField, raw: "9223372036854775807", wantErr: ErrInvalidValue},
		{name: "float", field: floatField, raw: "0.5", want: 0.5},
		{name: "float leading dot", field: floatField, raw: ".5", want: 0.5},
		{name: "float trailing dot", field: floatField, raw: "2.", want: 2.0},
		{name: "float integer", field: floatField, raw: "3", want: 3.0},
		{name: "float empty is null", field: floatField, raw: "", want: nil},
		{name: "float lone dot rejected", field: floatField, raw: ".", wantErr: ErrInvalidValue},
		{name: "float two dots rejected", field: floatField, raw: "1.2.3", wantErr: ErrInvalidValue},
		{name: "float exponent rejected", field: floatField, raw: "1e3", wantErr: ErrInvalidValue},
		{name: "string identity", field: strField, raw: " cats ", want: " cats "},
		{name: "string empty", field: strField, raw: "", want: ""},
		{name: "list lines", field: listField, raw: "pics\nEarthPorn", want: []string{"pics", "EarthPorn"}},
		{name: "list drops blank lines", field: listField, raw: "\npics\r\n\r\nEarthPorn\r", want: []string{"pics", "EarthPorn"}},
		{name: "list empty is null", field: listField, raw: "", want: nil},
		{name: "list only newlines is null", field: listField, raw: "\n\n", want: nil},
		{name: "enum by name", field: enumField, raw: "TOP", want: schema.Member{Name: "TOP", Value: "top"}},
		{name: "enum by wire value", field: enumField, raw: "hot", want: schema.Member{Name: "HOT", Value: "hot"}},
		{name: "enum unknown", field: enumField, raw: "best", wantErr: ErrInvalidEnumValue},
		{name: "nested", field: nestedField, raw: "x", wantErr: ErrNotCoercible},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.field, tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				var cerr *Error
				if !errors.As(err, &cerr) || cerr.Field != tc.field.Name || cerr.Raw != tc.raw {
					t.Fatalf("expected *Error for %s, got %#v", tc.field.Name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		field schema.Field
		value any
		want  string
	}{
		{name: "bool", field: boolField, value: true, want: "true"},
		{name: "int", field: intField, value: int64(120), want: "120"},
		{name: "int null", field: intField, value: nil, want: ""},
		{name: "float", field: floatField, value: 0.25, want: "0.25"},
		{name: "float whole", field: floatField, value: 2.0, want: "2"},
		{name: "float null", field: floatField, value: nil, want: ""},
		{name: "string", field: strField, value: "cats", want: "cats"},
		{name: "list", field: listField, value: []string{"pics", "EarthPorn"}, want: "pics\nEarthPorn"},
		{name: "list null", field: listField, value: nil, want: ""},
		{name: "enum wire value", field: enumField, value: schema.Member{Name: "HOT", Value: "hot"}, want: "hot"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Format(tc.field, tc.value)
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tc.want {
				t.Fatalf("format = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormat_RejectsNonCanonicalValues(t *testing.T) {
	if _, err := Format(intField, 5); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("plain int is not canonical, got %v", err)
	}
	if _, err := Format(boolField, nil); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("bool is not nullable, got %v", err)
	}
	if _, err := Format(nestedField, nil); !errors.Is(err, ErrNotCoercible) {
		t.Fatalf("nested must not format, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []struct {
		field schema.Field
		value any
	}{
		{boolField, true},
		{boolField, false},
		{intField, int64(0)},
		{intField, int64(7)},
		{intField, nil},
		{floatField, 1.5},
		{floatField, 0.001},
		{floatField, nil},
		{strField, "{REDDITOR}_{TITLE}_{POSTID}"},
		{listField, []string{"a", "b c"}},
		{listField, nil},
		{enumField, schema.Member{Name: "TOP", Value: "top"}},
	}
	for _, tc := range values {
		text, err := Format(tc.field, tc.value)
		if err != nil {
			t.Fatalf("%s: format: %v", tc.field.Name, err)
		}
		got, err := Parse(tc.field, text)
		if err != nil {
			t.Fatalf("%s: parse %q: %v", tc.field.Name, text, err)
		}
		if diff := cmp.Diff(tc.value, got); diff != "" {
			t.Errorf("%s: round trip mismatch (-want +got):\n%s", tc.field.Name, diff)
		}
	}
}

func TestAcceptEdit(t *testing.T) {
	tests := []struct {
		name        string
		field       schema.Field
		text        string
		placeholder bool
		want        bool
	}{
		{name: "int digits", field: intField, text: "123", want: true},
		{name: "int letter", field: intField, text: "12a", want: false},
		{name: "int cleared", field: intField, text: "", want: true},
		{name: "int overflow", field: intField, text: "99999999999999999999", want: false},
		{name: "repeat level above max", field: levelField, text: "17", want: false},
		{name: "int placeholder", field: intField, text: "e.g. 123", placeholder: true, want: true},
		{name: "float partial", field: floatField, text: "1.", want: true},
		{name: "float leading dot", field: floatField, text: ".", want: false},
		{name: "float second dot", field: floatField, text: "1.2.", want: false},
		{name: "string anything", field: strField, text: "x y z", want: true},
		{name: "list newlines", field: listField, text: "a\nb", want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AcceptEdit(tc.field, tc.text, tc.placeholder); got != tc.want {
				t.Fatalf("AcceptEdit(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestParse_EmptyListIsUntypedNil(t *testing.T) {
	for _, raw := range []string{"", "\r\n", "\n\n"} {
		got, err := Parse(listField, raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != nil {
			t.Fatalf("parse %q = %#v, want nil", raw, got)
		}
	}
}
