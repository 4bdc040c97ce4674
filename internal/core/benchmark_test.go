package core

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
)

// ============================================================================
// Conversion Benchmarks
// ============================================================================

// BenchmarkParseFloat benchmarks numeric cell conversion, the hot path of loading.
func BenchmarkParseFloat(b *testing.B) {
	testCases := []string{
		"123",
		"-456.78",
		"1,234,567.89", // Thousands separators
		"  999.99  ",   // Whitespace
		`="42.5"`,      // Excel formula
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseFloat(tc)
		}
	}
}

// BenchmarkParseInt benchmarks the most common case: plain floor counts.
func BenchmarkParseInt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ParseInt("12")
	}
}

// BenchmarkCleanCell_ExcelFormula benchmarks Excel formula unwrapping.
func BenchmarkCleanCell_ExcelFormula(b *testing.B) {
	for i := 0; i < b.N; i++ {
		CleanCell(`="Lenina 1"`)
	}
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

func BenchmarkLoadCSV(b *testing.B) {
	data := generateTestCSV(1000)
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadCSV(bytes.NewReader(data), CSVOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildReport(b *testing.B) {
	houses, err := LoadCSV(bytes.NewReader(generateTestCSV(10000)), CSVOptions{})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildReport(houses); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClassifyParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		n := 1
		for pb.Next() {
			Classify(n)
			n = n%40 + 1
		}
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// generateTestCSV generates a house dataset with the specified number of rows.
func generateTestCSV(rows int) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Header
	w.Write(ColumnNames())

	// Data rows
	for i := 0; i < rows; i++ {
		w.Write([]string{
			"Lenina " + strconv.Itoa(i+1),
			strconv.Itoa(i%30 + 1),
			"1,234.56",
			strconv.Itoa(1000 + i%500),
			strconv.Itoa(10 + i%90),
		})
	}
	w.Flush()

	return buf.Bytes()
}
