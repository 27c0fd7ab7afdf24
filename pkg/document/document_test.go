package document

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/scorewell/engrave/pkg/errors"
	"github.com/scorewell/engrave/pkg/layout"
)

func sampleDocument() Document {
	size := 2.0
	spacing := 4.0
	return Document{
		Version: CurrentVersion,
		Systems: []System{{
			Index:         3,
			StartTick:     960,
			EndTick:       1920,
			Justification: JustifyCentered,
			TargetWidth:   30,
			HorizontalLines: []GridLine{
				{Kind: LineSystemTop},
				{Kind: LineRowCenter, Constraints: []LineConstraint{
					{Kind: LockBelow, Line: 0, Distance: 2},
				}},
			},
			VerticalLines: []GridLine{
				{Kind: LineSystemStart},
				{Kind: LineColumnStart, Constraints: []LineConstraint{
					{Kind: FloatAfter, Line: 0, Distance: 0.25},
				}},
			},
			Blocks: []Block{
				{
					Width:   &size,
					Height:  &size,
					Descent: 1,
					Source:  &Source{ItemID: "item-1", Part: 1, Onset: 960},
					Constraints: []BlockConstraint{
						{Kind: "lock-vertical-center-to-line", Line: 1},
						{Kind: "float-start-after-line", Line: 1},
					},
				},
				{
					Spacing: true,
					Width:   &spacing,
					Constraints: []BlockConstraint{
						{Kind: "float-after-block", Block: 0, Distance: 0.5},
					},
				},
			},
		}},
	}
}

func TestRoundTripJSON(t *testing.T) {
	doc := sampleDocument()

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Errorf("JSON round trip changed the document:\n got %+v\nwant %+v", back, doc)
	}
}

func TestRoundTripTOML(t *testing.T) {
	doc := sampleDocument()

	data, err := MarshalTOML(doc)
	if err != nil {
		t.Fatalf("MarshalTOML: %v", err)
	}
	back, err := UnmarshalTOML(data)
	if err != nil {
		t.Fatalf("UnmarshalTOML: %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Errorf("TOML round trip changed the document:\n got %+v\nwant %+v", back, doc)
	}
}

func TestReadWriteFile(t *testing.T) {
	doc := sampleDocument()
	dir := t.TempDir()

	for _, name := range []string{"doc.json", "doc.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(doc, path); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !reflect.DeepEqual(doc, back) {
				t.Error("file round trip changed the document")
			}
		})
	}
}

func TestToSystems(t *testing.T) {
	systems, err := ToSystems(sampleDocument())
	if err != nil {
		t.Fatalf("ToSystems: %v", err)
	}
	if len(systems) != 1 {
		t.Fatalf("systems = %d, want 1", len(systems))
	}
	sys := systems[0]

	if sys.Index != 3 || sys.StartTick != 960 || sys.EndTick != 1920 {
		t.Errorf("passthrough metadata lost: %+v", sys)
	}
	if sys.Justification != layout.JustifyCentered {
		t.Errorf("justification = %v, want centered", sys.Justification)
	}
	if len(sys.HorizontalLines) != 2 || len(sys.VerticalLines) != 2 || len(sys.Blocks) != 2 {
		t.Fatalf("counts = %d/%d/%d", len(sys.HorizontalLines), len(sys.VerticalLines), len(sys.Blocks))
	}

	if got := sys.HorizontalLines[1].Constraints[0]; got.Kind != layout.HLockBelow || got.A != 0 || got.Distance != 2 {
		t.Errorf("horizontal constraint = %+v", got)
	}

	b0 := sys.Blocks[0]
	if !b0.Width.Fixed || b0.Width.Value != 2 {
		t.Errorf("block 0 width = %+v", b0.Width)
	}
	if b0.Source.ItemID != "item-1" {
		t.Errorf("block 0 item id = %q", b0.Source.ItemID)
	}
	if b0.Constraints[0].Kind != layout.LockVerticalCenterToLine {
		t.Errorf("block 0 constraint kind = %v", b0.Constraints[0].Kind)
	}

	b1 := sys.Blocks[1]
	if !b1.Spacing || b1.Collidable || b1.Layer != layout.Background {
		t.Errorf("spacing block defaults wrong: %+v", b1)
	}
	if b1.Source.ItemID == "" {
		t.Error("anonymous block should receive a generated item id")
	}
	if b1.Source.ItemID == b0.Source.ItemID {
		t.Error("generated item id should not clash with declared ones")
	}
}

func TestToSystemsResolves(t *testing.T) {
	systems, err := ToSystems(sampleDocument())
	if err != nil {
		t.Fatalf("ToSystems: %v", err)
	}
	res, err := systems[0].Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.HorizontalLines) != 2 || len(res.VerticalLines) != 2 {
		t.Errorf("resolved line counts = %d/%d", len(res.HorizontalLines), len(res.VerticalLines))
	}
}

func TestToSystemsErrors(t *testing.T) {
	valid := sampleDocument()

	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"no systems", func(d *Document) { d.Systems = nil }},
		{"version too new", func(d *Document) { d.Version = CurrentVersion + 1 }},
		{"no horizontal lines", func(d *Document) { d.Systems[0].HorizontalLines = nil }},
		{"no vertical lines", func(d *Document) { d.Systems[0].VerticalLines = nil }},
		{"top edge out of range", func(d *Document) { d.Systems[0].TopEdge = 7 }},
		{"leading edge out of range", func(d *Document) { d.Systems[0].LeadingEdge = -1 }},
		{"negative target width", func(d *Document) { d.Systems[0].TargetWidth = -1 }},
		{"unknown justification", func(d *Document) { d.Systems[0].Justification = "stretchy" }},
		{"unknown line kind", func(d *Document) { d.Systems[0].HorizontalLines[0].Kind = "diagonal" }},
		{"unknown line constraint", func(d *Document) {
			d.Systems[0].HorizontalLines[1].Constraints[0].Kind = "orbit"
		}},
		{"line constraint out of range", func(d *Document) {
			d.Systems[0].VerticalLines[1].Constraints[0].Line = 9
		}},
		{"unknown block constraint", func(d *Document) {
			d.Systems[0].Blocks[0].Constraints[0].Kind = "glue-to-line"
		}},
		{"block constraint line out of range", func(d *Document) {
			d.Systems[0].Blocks[0].Constraints[1].Line = 5
		}},
		{"block constraint block out of range", func(d *Document) {
			d.Systems[0].Blocks[1].Constraints[0].Block = 2
		}},
		{"spacing block without width", func(d *Document) { d.Systems[0].Blocks[1].Width = nil }},
		{"negative width", func(d *Document) { neg := -1.0; d.Systems[0].Blocks[0].Width = &neg }},
		{"unknown layer", func(d *Document) { d.Systems[0].Blocks[0].Layer = "underground" }},
		{"bad item id", func(d *Document) { d.Systems[0].Blocks[0].Source.ItemID = "x\x00y" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := sampleDocument()
			tc.mutate(&doc)
			_, err := ToSystems(doc)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("error code = %s, want INVALID_DOCUMENT: %v", errors.GetCode(err), err)
			}
		})
	}

	if err := Validate(valid); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}
}

func TestExportImportStable(t *testing.T) {
	sys, err := ToSystem(sampleDocument().Systems[0])
	if err != nil {
		t.Fatalf("ToSystem: %v", err)
	}

	first := FromSystem(sys)
	back, err := ToSystem(first)
	if err != nil {
		t.Fatalf("ToSystem(exported): %v", err)
	}
	second := FromSystem(back)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("export is not stable under re-import:\n got %+v\nwant %+v", second, first)
	}
}

func TestCanonical(t *testing.T) {
	a, err := Canonical(sampleDocument())
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	b, err := Canonical(sampleDocument())
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("canonical bytes should be deterministic")
	}

	changed := sampleDocument()
	changed.Systems[0].TargetWidth = 31
	c, err := Canonical(changed)
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if bytes.Equal(a, c) {
		t.Error("different documents should canonicalize differently")
	}
}
