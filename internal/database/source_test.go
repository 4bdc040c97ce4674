package database

import (
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/housing/internal/core"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		orderBy string
		want    string
	}{
		{
			name:    "plain table",
			table:   "houses",
			orderBy: "id",
			want: `SELECT "house_address"::text AS "house_address", "floor_count"::text AS "floor_count", ` +
				`"heating_value"::text AS "heating_value", "area_residential"::text AS "area_residential", ` +
				`"population"::text AS "population" FROM "houses" ORDER BY "id"`,
		},
		{
			name:  "schema qualified without order",
			table: "public.houses",
			want: `SELECT "house_address"::text AS "house_address", "floor_count"::text AS "floor_count", ` +
				`"heating_value"::text AS "heating_value", "area_residential"::text AS "area_residential", ` +
				`"population"::text AS "population" FROM "public"."houses"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuery(tt.table, tt.orderBy); got != tt.want {
				t.Errorf("buildQuery() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestBuildQuery_EscapesIdentifiers(t *testing.T) {
	got := buildQuery(`houses"; DROP TABLE houses; --`, "id")
	if !strings.Contains(got, `FROM "houses""; DROP TABLE houses; --"`) {
		t.Errorf("table name not quoted safely: %s", got)
	}
}

func TestToRows(t *testing.T) {
	records := []map[string]any{
		{
			"house_address":    "Lenina 1",
			"floor_count":      "9",
			"heating_value":    "1200.5",
			"area_residential": "3000",
			"population":       "120",
		},
	}

	houses, err := core.LoadRows(toRows(records))
	if err != nil {
		t.Fatalf("LoadRows() error = %v", err)
	}
	if len(houses) != 1 {
		t.Fatalf("got %d houses, want 1", len(houses))
	}
	h := houses[0]
	if h.Address != "Lenina 1" || h.FloorCount != 9 || h.Population != 120 {
		t.Errorf("unexpected house: %+v", h)
	}
}

func TestToRows_NullIsMissing(t *testing.T) {
	records := []map[string]any{
		{
			"house_address":    "Lenina 1",
			"floor_count":      nil,
			"heating_value":    "1200.5",
			"area_residential": "3000",
			"population":       "120",
		},
	}

	rows := toRows(records)
	if _, ok := rows[0]["floor_count"]; ok {
		t.Fatal("NULL column should be absent from the row")
	}

	_, err := core.LoadRows(rows)
	if !errors.Is(err, core.ErrFormat) {
		t.Fatalf("LoadRows() error = %v, want ErrFormat", err)
	}
}
