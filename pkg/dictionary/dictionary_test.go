package dictionary

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/japaniel/accent/pkg/accent"
	"github.com/japaniel/accent/pkg/mora"
	"github.com/japaniel/accent/pkg/notify"
)

func TestToWordState(t *testing.T) {
	tests := []struct {
		name       string
		word       Word
		wantTones  string
		wantIndex  int
		wantAccent string
	}{
		{"flat", Word{Surface: "箸", Pronunciation: "ハシ", AccentType: 0}, "LH|H", 2, "0/2"},
		{"first mora", Word{Surface: "猫", Pronunciation: "ネコ", AccentType: 1}, "HL|L", 0, "1/2"},
		{"last mora", Word{Surface: "橋", Pronunciation: "ハシ", AccentType: 2}, "LH|L", 1, "2/2"},
		{"hiragana reading", Word{Surface: "有難う", Pronunciation: "ありがとう", AccentType: 2}, "LHLLL|L", 1, "2/5"},
		{"core beyond word", Word{Surface: "橋", Pronunciation: "ハシ", AccentType: 9}, "LH|L", 1, "2/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ToWordState(Element{UUID: "id", Word: tt.word})
			if got := accent.FormatTones(s.Tones); got != tt.wantTones {
				t.Errorf("tones = %s, want %s", got, tt.wantTones)
			}
			if s.AccentIndex != tt.wantIndex {
				t.Errorf("accent index = %d, want %d", s.AccentIndex, tt.wantIndex)
			}
			if got := tt.word.AccentString(); got != tt.wantAccent {
				t.Errorf("AccentString = %q, want %q", got, tt.wantAccent)
			}
		})
	}
}

func TestWordStateRoundTrip(t *testing.T) {
	for core := 0; core <= 5; core++ {
		w := Word{Surface: "有難う", Pronunciation: "アリガトウ", AccentType: core, Priority: 7}
		back := ToWordState(Element{UUID: "x", Word: w}).Element()
		if back.UUID != "x" || !reflect.DeepEqual(back.Word, w) {
			t.Errorf("core %d: round trip = %+v, want %+v", core, back.Word, w)
		}
	}
}

func TestNewWordState(t *testing.T) {
	s := NewWordState()
	if s.Priority != DefaultPriority || s.AccentIndex != 0 {
		t.Fatalf("unexpected default %+v", s)
	}
	if got := accent.FormatTones(s.Tones); got != "H" {
		t.Fatalf("default tones = %s, want H", got)
	}
	if got := s.Element().Word.AccentType; got != 0 {
		t.Fatalf("default accent type = %d, want 0", got)
	}
}

func TestWithAccentIndex(t *testing.T) {
	s := ToWordState(Element{Word: Word{Surface: "箸", Pronunciation: "ハシ", AccentType: 1}})

	s = s.WithAccentIndex(2)
	if got := accent.FormatTones(s.Tones); got != "LH|H" {
		t.Fatalf("tones = %s, want LH|H", got)
	}
	if s.Element().Word.AccentType != 0 {
		t.Fatalf("accent type = %d, want 0", s.Element().Word.AccentType)
	}

	s = s.WithAccentIndex(1)
	if got := accent.FormatTones(s.Tones); got != "LH|L" {
		t.Fatalf("tones = %s, want LH|L", got)
	}
	if s.Element().Word.AccentType != 2 {
		t.Fatalf("accent type = %d, want 2", s.Element().Word.AccentType)
	}

	// out of range indices clamp
	s = s.WithAccentIndex(42)
	if s.AccentIndex != 2 || s.Element().Word.AccentType != 0 {
		t.Fatalf("clamped state = %+v", s)
	}
	s = s.WithAccentIndex(-1)
	if s.AccentIndex != 0 || s.Element().Word.AccentType != 1 {
		t.Fatalf("clamped state = %+v", s)
	}
}

func TestWithTones(t *testing.T) {
	s := ToWordState(Element{Word: Word{Surface: "有難う", Pronunciation: "アリガトウ", AccentType: 0}})
	tones, err := accent.ParseTones("HLHLL|L")
	if err != nil {
		t.Fatal(err)
	}
	painted, err := accent.WithTones(accent.Morae(s.Tones), tones)
	if err != nil {
		t.Fatal(err)
	}
	s = s.WithTones(painted)
	if s.AccentIndex != 2 || s.Element().Word.AccentType != 3 {
		t.Fatalf("painted state = index %d, type %d", s.AccentIndex, s.Element().Word.AccentType)
	}
}

func TestWithReading(t *testing.T) {
	fetched := accent.Tones(mora.Segment("キャベツ"), accent.Flat())
	s := NewWordState().WithReading("キャベツ", fetched)
	if s.Pronunciation != "キャベツ" {
		t.Fatalf("pronunciation = %q", s.Pronunciation)
	}
	if s.Surface != "キャベツ" {
		t.Fatalf("surface = %q", s.Surface)
	}
	if got := accent.FormatTones(s.Tones); got != "HLL|L" {
		t.Fatalf("tones = %s, want HLL|L", got)
	}
	if s.Element().Word.AccentType != 1 {
		t.Fatalf("accent type = %d, want 1", s.Element().Word.AccentType)
	}

	// an empty surface keeps the typed one
	s = WordState{Surface: "甘藍"}.WithReading("", fetched)
	if s.Surface != "甘藍" {
		t.Fatalf("surface replaced: %q", s.Surface)
	}
}

func TestValidate(t *testing.T) {
	ok := WordState{Surface: "箸", Pronunciation: "はし", Priority: 5}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	tests := []struct {
		name  string
		state WordState
		want  error
	}{
		{"no surface", WordState{Pronunciation: "ハシ"}, ErrEmptyWord},
		{"no pronunciation", WordState{Surface: "箸"}, ErrEmptyWord},
		{"kanji pronunciation", WordState{Surface: "箸", Pronunciation: "箸"}, ErrInvalidPronunciation},
		{"priority high", WordState{Surface: "箸", Pronunciation: "ハシ", Priority: 11}, ErrInvalidPriority},
		{"priority low", WordState{Surface: "箸", Pronunciation: "ハシ", Priority: -1}, ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.state.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidatePronunciation(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"ハシ", nil},
		{"はし", nil},
		{"ﾊｼ", nil},
		{"コーヒー", nil},
		{"", ErrEmptyWord},
		{"  ", ErrEmptyWord},
		{"ハ箸シ", ErrInvalidPronunciation},
		{"ト・ゥ", ErrInvalidPronunciation},
		{"キャ ベツ", ErrInvalidPronunciation},
		{"hashi", ErrInvalidPronunciation},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidatePronunciation(tt.in)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("ValidatePronunciation(%q) = %v", tt.in, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidatePronunciation(%q) = %v, want %v", tt.in, err, tt.want)
			}
		})
	}

	mixed := WordState{Surface: "箸", Pronunciation: "ハ箸シ", Priority: DefaultPriority}
	if err := mixed.Validate(); !errors.Is(err, ErrInvalidPronunciation) {
		t.Fatalf("Validate(mixed) = %v", err)
	}
}

func TestPriorityLabel(t *testing.T) {
	if got := PriorityLabel(5); got != "標準" {
		t.Fatalf("PriorityLabel(5) = %q", got)
	}
	if got := PriorityLabel(4); got != "" {
		t.Fatalf("PriorityLabel(4) = %q", got)
	}
}

func TestElementsSorted(t *testing.T) {
	d := UserDict{
		"b": {Surface: "猫"},
		"a": {Surface: "犬"},
		"c": {Surface: "犬"},
	}
	got := Elements(d)
	ids := []string{got[0].UUID, got[1].UUID, got[2].UUID}
	if !reflect.DeepEqual(ids, []string{"a", "c", "b"}) {
		t.Fatalf("order = %v", ids)
	}
	if !reflect.DeepEqual(FromElements(got), d) {
		t.Fatalf("FromElements did not rebuild the dictionary")
	}
}

const keyedJSON = `{
  "0b7a": {"surface": "箸", "pronunciation": "ハシ", "accent_type": 1, "priority": 5},
  "9f1c": {"surface": "橋", "pronunciation": "ハシ", "accent_type": 2, "priority": 7}
}`

func TestDecodeKeyedJSON(t *testing.T) {
	d, err := Decode(strings.NewReader(keyedJSON), JSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(d) != 2 || d["9f1c"].AccentType != 2 || d["0b7a"].Surface != "箸" {
		t.Fatalf("unexpected dict %+v", d)
	}
}

func TestDecodeElementList(t *testing.T) {
	in := `[{"uuid": "1", "word": {"surface": "猫", "pronunciation": "ネコ", "accent_type": 1, "priority": 5}}]`
	d, err := Decode(strings.NewReader(in), JSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d["1"].Pronunciation != "ネコ" {
		t.Fatalf("unexpected dict %+v", d)
	}
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	d, err := Decode(strings.NewReader("  "), JSON)
	if err != nil || len(d) != 0 {
		t.Fatalf("empty input = %v, %v", d, err)
	}
	if _, err := Decode(strings.NewReader(`"nope"`), JSON); err == nil {
		t.Fatal("expected error for a JSON string")
	}
}

func TestEncodeDecodeYAML(t *testing.T) {
	d, err := Decode(strings.NewReader(keyedJSON), JSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, d, YAML); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "accent_type: 2") {
		t.Fatalf("yaml output missing accent_type:\n%s", buf.String())
	}
	back, err := Decode(&buf, YAML)
	if err != nil {
		t.Fatalf("Decode yaml: %v", err)
	}
	if !reflect.DeepEqual(back, d) {
		t.Fatalf("yaml round trip = %+v, want %+v", back, d)
	}
}

func TestEncodeJSONKeepsKana(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, UserDict{"1": {Surface: "猫", Pronunciation: "ネコ", AccentType: 1}}, JSON); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"pronunciation": "ネコ"`) {
		t.Fatalf("unexpected json:\n%s", buf.String())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user_dict.json")
	if err := os.WriteFile(path, []byte(keyedJSON), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(d) != 2 {
		t.Fatalf("expected 2 words, got %d", len(d))
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestFormats(t *testing.T) {
	if FormatFromPath("a.YML") != YAML || FormatFromPath("a.json") != JSON || FormatFromPath("a") != JSON {
		t.Fatal("FormatFromPath")
	}
	if f, err := ParseFormat("yml"); err != nil || f != YAML {
		t.Fatalf("ParseFormat(yml) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestEditorLifecycle(t *testing.T) {
	var rec notify.Recorder
	e := NewEditor(nil, &rec)
	e.NewID = func() string { return "fixed-id" }

	// registering an empty word fails and is reported
	if _, err := e.Register(); !errors.Is(err, ErrEmptyWord) {
		t.Fatalf("Register(empty) = %v", err)
	}
	if last, _ := rec.Last(); last.Severity != notify.Error {
		t.Fatalf("expected an error notification, got %+v", last)
	}

	e.State = e.State.WithReading("箸", accent.Tones(mora.Segment("ハシ"), accent.Flat()))
	e.State = e.State.WithAccentIndex(0)
	id, err := e.Register()
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id != "fixed-id" || e.IsNew || e.State.UUID != id {
		t.Fatalf("unexpected editor state after register: %+v", e)
	}
	if w := e.Dict[id]; w.AccentType != 1 || w.Pronunciation != "ハシ" {
		t.Fatalf("stored word %+v", w)
	}

	e.State = e.State.WithAccentIndex(2)
	if err := e.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.Dict[id].AccentType != 0 {
		t.Fatalf("update not applied: %+v", e.Dict[id])
	}

	e.New()
	if err := e.Select(id); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if e.State.AccentIndex != 2 || e.IsNew {
		t.Fatalf("selected state %+v", e.State)
	}

	if err := e.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(e.Dict) != 0 || !e.IsNew {
		t.Fatalf("delete left %v, isNew %v", e.Dict, e.IsNew)
	}
	if err := e.Select(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Select(deleted) = %v", err)
	}
	if err := e.Update(); !errors.Is(err, ErrEmptyWord) {
		t.Fatalf("Update(new) = %v", err)
	}

	successes := 0
	for _, n := range rec.All() {
		if n.Severity == notify.Success {
			successes++
		}
	}
	if successes != 3 {
		t.Fatalf("expected 3 success notifications, got %d", successes)
	}
}
