package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/kegg-tools/KEGG-Go-SDK/api"
)

func TestTabReader_Headers(t *testing.T) {
	input := "id\tname\tpathway\nhsa:10458\tBAIAP2L2\tmap04110"
	reader := NewTabReader(strings.NewReader(input), true)

	headers, err := reader.Headers()
	if err != nil {
		t.Fatalf("Headers() error = %v", err)
	}

	if len(headers) != 3 {
		t.Errorf("len(headers) = %d, want 3", len(headers))
	}

	expected := []string{"id", "name", "pathway"}
	for i, h := range headers {
		if h != expected[i] {
			t.Errorf("headers[%d] = %q, want %q", i, h, expected[i])
		}
	}
}

func TestTabReader_NoHeaders(t *testing.T) {
	input := "hsa:10458\tBAIAP2L2"
	reader := NewTabReader(strings.NewReader(input), false)

	headers, err := reader.Headers()
	if err != nil {
		t.Fatalf("Headers() error = %v", err)
	}

	if headers != nil {
		t.Errorf("headers should be nil for no-header mode")
	}
}

func TestTabReader_Read(t *testing.T) {
	input := "id\tname\nD00001\tWater\nD00002\tNadide"
	reader := NewTabReader(strings.NewReader(input), true)

	// Read headers first
	_, err := reader.Headers()
	if err != nil {
		t.Fatalf("Headers() error = %v", err)
	}

	// Read first data row
	row, err := reader.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(row) != 2 || row[0] != "D00001" || row[1] != "Water" {
		t.Errorf("row = %v, want [D00001 Water]", row)
	}

	// Read second data row
	row, err = reader.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(row) != 2 || row[0] != "D00002" || row[1] != "Nadide" {
		t.Errorf("row = %v, want [D00002 Nadide]", row)
	}

	// Read past end
	_, err = reader.Read()
	if err != io.EOF {
		t.Errorf("Read() at EOF should return io.EOF, got %v", err)
	}
}

func TestTabReader_SkipsBlankLines(t *testing.T) {
	input := "id\tname\n\nD00001\tWater\n\n\nD00002\tNadide\n"
	reader := NewTabReader(strings.NewReader(input), true)

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		rows = append(rows, row)
	}

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0][0] != "D00001" || rows[1][0] != "D00002" {
		t.Errorf("rows = %v", rows)
	}
}

func TestTabReader_ReadBatch(t *testing.T) {
	input := "drug\tscore\nD00001\t1\nD00002\t2\nD00003\t3\nD00004\t4\nD00005\t5"
	reader := NewTabReader(strings.NewReader(input), true)

	_, err := reader.Headers()
	if err != nil {
		t.Fatalf("Headers() error = %v", err)
	}

	// Read batch of 3, keyed on the first column
	keys, rows, err := reader.ReadBatch(3, 0)
	if err != nil {
		t.Fatalf("ReadBatch() error = %v", err)
	}

	if len(keys) != 3 {
		t.Errorf("len(keys) = %d, want 3", len(keys))
	}
	if len(rows) != 3 {
		t.Errorf("len(rows) = %d, want 3", len(rows))
	}

	expectedKeys := []string{"D00001", "D00002", "D00003"}
	for i, k := range keys {
		if k != expectedKeys[i] {
			t.Errorf("keys[%d] = %q, want %q", i, k, expectedKeys[i])
		}
	}

	// The rest of the file in a second batch
	keys, _, err = reader.ReadBatch(3, 0)
	if err != nil {
		t.Fatalf("ReadBatch() error = %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("len(keys) = %d, want 2", len(keys))
	}
}

func TestTabReader_ReadBatch_LastColumn(t *testing.T) {
	input := "gene\tdrug\nhsa:10458\tD00001\nhsa:991\tD00002"
	reader := NewTabReader(strings.NewReader(input), true)

	keys, _, err := reader.ReadBatch(10, -1)
	if err != nil {
		t.Fatalf("ReadBatch() error = %v", err)
	}

	if len(keys) != 2 || keys[0] != "D00001" || keys[1] != "D00002" {
		t.Errorf("keys = %v, want last-column values", keys)
	}
}

func TestTabReader_FindColumn(t *testing.T) {
	input := "id\tname\tvalue"
	reader := NewTabReader(strings.NewReader(input), true)
	_, _ = reader.Headers()

	tests := []struct {
		col     string
		want    int
		wantErr bool
	}{
		{"0", -1, false}, // 0 means last column
		{"", -1, false},  // empty means last column
		{"1", 0, false},  // 1-based -> 0-based
		{"2", 1, false},
		{"3", 2, false},
		{"id", 0, false}, // by name
		{"name", 1, false},
		{"value", 2, false},
		{"unknown", 0, true}, // unknown column
		{"-1", 0, true},      // negative index
	}

	for _, tt := range tests {
		t.Run(tt.col, func(t *testing.T) {
			got, err := reader.FindColumn(tt.col)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindColumn(%q) error = %v, wantErr %v", tt.col, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("FindColumn(%q) = %d, want %d", tt.col, got, tt.want)
			}
		})
	}
}

func TestTabWriter_WriteRow(t *testing.T) {
	var buf strings.Builder
	writer := NewTabWriter(&buf)

	err := writer.WriteRow("D00001", "Water", "")
	if err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}

	err = writer.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	expected := "D00001\tWater\t\n"
	if buf.String() != expected {
		t.Errorf("output = %q, want %q", buf.String(), expected)
	}
}

func TestTabWriter_RoundTrip(t *testing.T) {
	var buf strings.Builder
	writer := NewTabWriter(&buf)

	if err := writer.WriteHeaders([]string{"id", "name"}); err != nil {
		t.Fatalf("WriteHeaders() error = %v", err)
	}
	if err := writer.WriteRow("C00022", "Pyruvate"); err != nil {
		t.Fatalf("WriteRow() error = %v", err)
	}
	if err := writer.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	reader := NewTabReader(strings.NewReader(buf.String()), true)
	headers, err := reader.Headers()
	if err != nil {
		t.Fatalf("Headers() error = %v", err)
	}
	if len(headers) != 2 || headers[0] != "id" {
		t.Errorf("headers = %v", headers)
	}

	row, err := reader.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(row) != 2 || row[0] != "C00022" || row[1] != "Pyruvate" {
		t.Errorf("row = %v, want [C00022 Pyruvate]", row)
	}
}

func TestFormatSet(t *testing.T) {
	tests := []struct {
		name  string
		set   api.IDSet
		delim string
		want  string
	}{
		{"nil", nil, "::", ""},
		{"empty", api.IDSet{}, "::", ""},
		{"single", api.IDSet{"10458": true}, "::", "10458"},
		{"sorted", api.IDSet{"Q9UHR4": true, "A0A024R1U4": true}, "::", "A0A024R1U4::Q9UHR4"},
		{"semi delim", api.IDSet{"b": true, "a": true}, "; ", "a; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSet(tt.set, tt.delim)
			if got != tt.want {
				t.Errorf("FormatSet(%v, %q) = %q, want %q", tt.set, tt.delim, got, tt.want)
			}
		})
	}
}

func TestIOOptions_GetDelimiter(t *testing.T) {
	tests := []struct {
		delim string
		want  string
	}{
		{"::", "::"},
		{"tab", "\t"},
		{"space", " "},
		{"semi", "; "},
		{"comma", ","},
		{"custom", "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.delim, func(t *testing.T) {
			opts := &IOOptions{Delim: tt.delim}
			got := opts.GetDelimiter()
			if got != tt.want {
				t.Errorf("GetDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}
