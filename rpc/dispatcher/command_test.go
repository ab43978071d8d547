package dispatcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		line     string
		expected Command
	}{
		{line: "get countries", expected: Command{Kind: KindGetCountries}},
		{line: "get roads 1", expected: Command{Kind: KindGetRoads, CountryID: 1}},
		{line: "get roads 0", expected: Command{Kind: KindGetRoads, CountryID: 0}},
		{line: "get roads 007", expected: Command{Kind: KindGetRoads, CountryID: 7}},
		{line: "get roads 32767", expected: Command{Kind: KindGetRoads, CountryID: 32767}},
		{line: "get towns 42", expected: Command{Kind: KindGetTowns, CountryID: 42}},
		{line: "finish", expected: Command{Kind: KindFinish}},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.expected, Parse(tc.line))
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	lines := []string{
		"",
		" ",
		"get",
		"get roads",
		"get roads ",
		"get towns",
		"get roads -1",
		"get roads 1.5",
		"get roads one",
		"get roads 1 2",
		"Get countries",
		"GET COUNTRIES",
		"get countries ",
		" get countries",
		"get countries\t",
		"finish ",
		"Finish",
		"finished",
		"get roads 1 ",
		"get  roads 1",
		"get roads 1\r",
		"get country",
		"select * from roads",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			cmd := Parse(line)
			assert.Equal(t, KindUnknown, cmd.Kind, "line %q", line)
			assert.NoError(t, cmd.Err)
		})
	}
}

func TestParse_IDOutOfRange(t *testing.T) {
	for _, line := range []string{"get roads 32768", "get towns 65536", "get roads 99999999999999999999"} {
		t.Run(line, func(t *testing.T) {
			cmd := Parse(line)
			assert.NotEqual(t, KindUnknown, cmd.Kind)
			assert.True(t, errors.Is(cmd.Err, ErrIDOutOfRange), "expected ErrIDOutOfRange, got %v", cmd.Err)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "get_countries", KindGetCountries.String())
	assert.Equal(t, "get_roads", KindGetRoads.String())
	assert.Equal(t, "get_towns", KindGetTowns.String())
	assert.Equal(t, "finish", KindFinish.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
