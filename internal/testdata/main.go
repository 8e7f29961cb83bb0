// Package testdata holds sample texts shared by the package tests.
package testdata

import (
	"encoding/json"

	"git.lost.host/meutraa/hopedit/internal/game"
)

// Map is the encoded form of the Chart fixture's notes.
const Map = "12345,1|0|1000,2|0|-500,3|0|0,0|0|-250"

const SoundSpace = "12345,1|1|1000,0|0|1500,3|2|2000"

const Properties = `{"timings":[[120,1000],[240,2000]],"bookmarks":[["intro",1000,2000],["drop",3000]],"currentTime":1500,"beatDivisor":3,"exportOffset":25}`

const LegacyProperties = "BPM=120|1000,240|2000\r\nBookmarks=intro|1000|2000,drop|3000\r\nOffset=25\r\nTime=1500\r\nDivisor=4\r\n"

// OldProperties predates timing points, so its Offset moves the only point.
const OldProperties = "BPM=120\nOffset=350\nTime=0\nDivisor=2\n"

const chart = `{
	"Notes": [
		{"Lane": 1, "Ms": 1000},
		{"Lane": 2, "Ms": 1500},
		{"Lane": 3, "Ms": 2000},
		{"Lane": 0, "Ms": 2250}
	],
	"TimingPoints": [{"BPM": 120, "Ms": 1000}, {"BPM": 240, "Ms": 2000}],
	"Bookmarks": [
		{"Label": "intro", "StartMs": 1000, "EndMs": 2000},
		{"Label": "drop", "StartMs": 3000, "EndMs": 3000}
	]
}`

func GetChart() (*game.Chart, error) {
	var c game.Chart
	if err := json.Unmarshal([]byte(chart), &c); nil != err {
		return nil, err
	}
	return &c, nil
}
