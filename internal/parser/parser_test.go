package parser

import (
	"math/rand"
	"strings"
	"testing"

	"git.lost.host/meutraa/hopedit/internal/game"
	"git.lost.host/meutraa/hopedit/internal/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMap(t *testing.T) {
	chart, err := testdata.GetChart()
	require.NoError(t, err)
	assert.Equal(t, testdata.Map, EncodeMap("12345", chart.Notes, 0))
	assert.Equal(t, "7", EncodeMap("7", nil, 0))
	assert.Equal(t, "7,1.23|0|110", EncodeMap("7", []game.Note{{Lane: 1.234, Ms: 100}}, 10))
	// Halves round to even
	assert.Equal(t, "7,0.12|0|0,0.38|0|0", EncodeMap("7", []game.Note{{Lane: 0.125}, {Lane: 0.375}}, 0))

	_, notes, err := DecodeMap("7,0.125|0|5")
	require.NoError(t, err)
	assert.Equal(t, []game.Note{{Lane: 0.12, Ms: 5}}, notes)
}

func TestDecodeMap(t *testing.T) {
	chart, err := testdata.GetChart()
	require.NoError(t, err)
	id, notes, err := DecodeMap(testdata.Map)
	require.NoError(t, err)
	assert.Equal(t, "12345", id)
	assert.Equal(t, chart.Notes, notes)

	id, notes, err = DecodeMap("abc,,")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
	assert.Empty(t, notes)
}

var badMaps = map[string]string{
	"missing field": "1,1|0",
	"bad lane":      "1,x|0|10",
	"bad delta":     "1,1|0|1.5",
}

func TestDecodeMapErrors(t *testing.T) {
	for name, data := range badMaps {
		_, _, err := DecodeMap(data)
		var perr *ParseError
		assert.ErrorAs(t, err, &perr, name)
	}
}

func TestMapRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		notes := make([]game.Note, r.Intn(501))
		for i := range notes {
			notes[i] = game.Note{Lane: float64(r.Intn(401)) / 100, Ms: r.Int63n(600001)}
		}
		sorted := append([]game.Note(nil), notes...)
		game.SortNotes(sorted)

		offset := int64(r.Intn(200) - 100)
		id, decoded, err := DecodeMap(EncodeMap("song", sorted, offset))
		require.NoError(t, err)
		SubtractOffset(decoded, offset)
		assert.Equal(t, "song", id)
		if len(sorted) == 0 {
			assert.Empty(t, decoded)
			continue
		}
		assert.Equal(t, sorted, decoded)
	}
}

func TestDecodeSoundSpace(t *testing.T) {
	id, notes, err := DecodeSoundSpace(testdata.SoundSpace)
	require.NoError(t, err)
	assert.Equal(t, "12345", id)
	assert.Equal(t, []game.Note{{Lane: 2, Ms: 1000}, {Lane: 0, Ms: 1500}, {Lane: 4, Ms: 2000}}, notes)
}

func checkProperties(t *testing.T, p *Properties) {
	t.Helper()
	assert.Equal(t, []game.TimingPoint{{BPM: 120, Ms: 1000}, {BPM: 240, Ms: 2000}}, p.TimingPoints)
	assert.Equal(t, []game.Bookmark{
		{Label: "intro", StartMs: 1000, EndMs: 2000},
		{Label: "drop", StartMs: 3000, EndMs: 3000},
	}, p.Bookmarks)
	require.NotNil(t, p.CurrentTime)
	assert.Equal(t, 1500.0, *p.CurrentTime)
	require.NotNil(t, p.BeatDivisor)
	assert.Equal(t, 4.0, *p.BeatDivisor)
	require.NotNil(t, p.ExportOffset)
	assert.Equal(t, int64(25), *p.ExportOffset)
}

func TestDecodeProperties(t *testing.T) {
	p, err := DecodeProperties(testdata.Properties)
	require.NoError(t, err)
	checkProperties(t, p)

	p, err = DecodeProperties(testdata.LegacyProperties)
	require.NoError(t, err)
	checkProperties(t, p)
}

func TestPropertiesRoundTrip(t *testing.T) {
	p, err := DecodeProperties(testdata.Properties)
	require.NoError(t, err)
	text, err := EncodeProperties(p)
	require.NoError(t, err)
	assert.Contains(t, text, `"beatDivisor":3`)

	p, err = DecodeProperties(text)
	require.NoError(t, err)
	checkProperties(t, p)
}

func TestOldLegacyProperties(t *testing.T) {
	p, err := DecodeProperties(testdata.OldProperties)
	require.NoError(t, err)
	assert.Equal(t, []game.TimingPoint{{BPM: 120, Ms: 350}}, p.TimingPoints)
	assert.Nil(t, p.ExportOffset)
	require.NotNil(t, p.BeatDivisor)
	assert.Equal(t, 2.0, *p.BeatDivisor)
}

var badProperties = []string{
	"",
	"not properties",
	"BPM=abc",
	"Divisor=four",
	"Bookmarks=a|b|c",
	`{"timings":[[120,0]],"bookmarks":[[1,2,3]]}`,
}

func TestDecodePropertiesErrors(t *testing.T) {
	for _, text := range badProperties {
		p, err := DecodeProperties(text)
		var perr *ParseError
		assert.ErrorAs(t, err, &perr, text)
		assert.Nil(t, p)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	chart, err := testdata.GetChart()
	require.NoError(t, err)
	chart.Bookmarks[0].Label = "a, b|c\n"
	s := &Snapshot{
		Chart:        *chart,
		Tempo:        0.75,
		Zoom:         1.5,
		FilePath:     "/maps/song.txt",
		SoundID:      "12345",
		CurrentTime:  1234.5,
		BeatDivisor:  3.5,
		ExportOffset: -20,
		History:      `[{"Label":"ADD NOTE"}]`,
		HistoryIndex: 0,
		Key:          "key",
	}
	text := EncodeSnapshot(s)
	assert.Len(t, strings.Split(text, FieldSeparator), 13)

	decoded, err := DecodeSnapshot(text)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestLegacySnapshot(t *testing.T) {
	text := strings.Join([]string{"1|0|100,2.5|0|50", "120|0", "x|10|20", "1", "1", "", "99", "0", "4", "0"}, FieldSeparator)
	s, err := DecodeSnapshot(text)
	require.NoError(t, err)
	assert.Equal(t, []game.Note{{Lane: 2.5, Ms: 50}, {Lane: 1, Ms: 100}}, s.Chart.Notes)
	assert.Equal(t, "99", s.SoundID)
	assert.Equal(t, -1, s.HistoryIndex)
	assert.Empty(t, s.History)

	_, err = DecodeSnapshot("garbage")
	assert.Error(t, err)
}

func TestSnapshotCollection(t *testing.T) {
	text := JoinSnapshots([]string{"a", "b"})
	assert.Equal(t, "a\r\x00b", text)
	assert.Equal(t, []string{"a", "b"}, SplitSnapshots(text))
	assert.Empty(t, SplitSnapshots(""))
}

func TestBookmarkClipboard(t *testing.T) {
	bookmarks := []game.Bookmark{{Label: "intro", StartMs: 0, EndMs: 500}, {Label: "drop ~ x", StartMs: 900, EndMs: 900}}
	text := FormatBookmarks(bookmarks)
	assert.Equal(t, "0-500 ~ intro\n900 ~ drop ~ x", text)
	assert.Equal(t, bookmarks, ParseBookmarks(text+"\njunk\nx ~ y"))
}

var patterns = map[string][]PatternNote{
	"1|0,2|1,3|2": {{1, 0}, {2, 1}, {3, 2}},
	"0.5|0|4":     {{0.5, 4}},
	"":            nil,
}

func TestParsePattern(t *testing.T) {
	for text, expected := range patterns {
		got, err := ParsePattern(text)
		require.NoError(t, err, text)
		assert.Equal(t, expected, got, text)
	}
	for _, bad := range []string{"1", "a|1", "1|-1", "1|0.5"} {
		_, err := ParsePattern(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatPattern(t *testing.T) {
	notes := []game.Note{{Lane: 1, Ms: 100}, {Lane: 2, Ms: 150}, {Lane: 3, Ms: 250}, {Lane: 0, Ms: 250}}
	assert.Equal(t, "1|0,2|1,3|3,0|3", FormatPattern(notes))
	assert.Equal(t, "1|0", FormatPattern(notes[:1]))
	assert.Equal(t, "", FormatPattern(nil))
}
