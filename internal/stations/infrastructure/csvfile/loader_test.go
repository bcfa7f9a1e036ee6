package csvfile

import (
	"strings"
	"testing"
)

func TestParseStandardTable(t *testing.T) {
	input := strings.Join([]string{
		"id;name;time_zone;country",
		"1;Paris Gare de Lyon;Europe/Paris;FR",
		"2;Zürich HB;Europe/Zurich;CH",
		"3;Ghost Halt;;XX",
	}, "\n")

	table, err := Parse(strings.NewReader(input), ';')
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 stations (timezone-less row skipped), got %d", len(table))
	}
	if table[0].Name != "Paris Gare de Lyon" || table[0].Timezone != "Europe/Paris" {
		t.Fatalf("unexpected first station: %+v", table[0])
	}
	if table[0].HasCoord {
		t.Fatal("standard table has no coordinates")
	}
}

func TestParseCustomTableWithCoordinates(t *testing.T) {
	input := strings.Join([]string{
		"name,time_zone,latitude,longitude",
		"Home Stop,Europe/Paris,48.8566,2.3522",
		"No Coords,Europe/Paris,,",
	}, "\n")

	table, err := Parse(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(table))
	}
	if !table[0].HasCoord || table[0].Lat != 48.8566 || table[0].Lon != 2.3522 {
		t.Fatalf("expected coordinates on first station, got %+v", table[0])
	}
	if table[1].HasCoord {
		t.Fatalf("expected no coordinates on second station, got %+v", table[1])
	}
}

func TestParseMissingColumns(t *testing.T) {
	if _, err := Parse(strings.NewReader("name,country\nParis,FR"), ','); err == nil {
		t.Fatal("expected an error for a missing time_zone column")
	}
	if _, err := Parse(strings.NewReader("time_zone\nEurope/Paris"), ','); err == nil {
		t.Fatal("expected an error for a missing name column")
	}
}
