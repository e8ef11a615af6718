package dicom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON_Element(t *testing.T) {
	buf := p10("1.2.840.10008.1.2.1",
		expl(0x0010, 0x0010, "PN", []byte("DOE^JOHN")),
	)
	f, err := Parse(buf)
	require.NoError(t, err)

	e, _ := f.Elements.Get(0x0010, 0x0010)
	j, err := json.Marshal(e)
	require.NoError(t, err)

	assert.Contains(t, string(j), `"tag":"(0010,0010)"`)
	assert.Contains(t, string(j), `"key":"x00100010"`)
	assert.Contains(t, string(j), `"vr":"PN"`)
	assert.Contains(t, string(j), `"DOE^JOHN"`)
}

func TestMarshalJSON_DataSetIsWireOrderedArray(t *testing.T) {
	buf := p10("1.2.840.10008.1.2.1",
		expl(0x0028, 0x0010, "US", le16(2)),
		expl(0x0008, 0x0060, "CS", []byte("CT")),
	)
	f, err := Parse(buf)
	require.NoError(t, err)

	j, err := json.Marshal(f.Elements)
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(j, &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "x00020000", rows[0]["key"])
	assert.Equal(t, "x00280010", rows[2]["key"])
	assert.Equal(t, "x00080060", rows[3]["key"])
}

func TestMarshalJSON_FragmentsElided(t *testing.T) {
	buf := p10("1.2.840.10008.1.2.4.50",
		explUndef(0x7FE0, 0x0010, "OB"),
		item(nil),
		item([]byte{0xFF, 0xD8, 0xFF}),
		seqDelim(),
	)
	f, err := Parse(buf)
	require.NoError(t, err)

	e, _ := f.Elements.GetByKey("x7FE00010")
	j, err := json.Marshal(e)
	require.NoError(t, err)

	assert.Contains(t, string(j), `"fragmentBytes":[0,3]`)
	assert.NotContains(t, string(j), "FFD8")
}
