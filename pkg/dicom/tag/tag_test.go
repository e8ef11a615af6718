package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyForm(t *testing.T) {
	assert.Equal(t, "x7FE00010", PixelData.Key())
	assert.Equal(t, "x00100010", PatientName.Key())
	assert.Equal(t, "xFFFEE0DD", SequenceDelimitationItem.Key())
}

func TestString(t *testing.T) {
	assert.Equal(t, "(7FE0,0010)", PixelData.String())
	assert.Equal(t, "(0002,0000)", FileMetaInformationGroupLength.String())
}

func TestFromKey(t *testing.T) {
	for _, tc := range []Tag{PixelData, PatientName, Item, New(0x0008, 0x103E)} {
		parsed, err := FromKey(tc.Key())
		require.NoError(t, err)
		assert.Equal(t, tc, parsed)
	}

	for _, bad := range []string{"", "x123", "7FE00010x", "xZZZZ0010"} {
		_, err := FromKey(bad)
		assert.Error(t, err, "key %q", bad)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, Item.IsFraming())
	assert.True(t, ItemDelimitationItem.IsFraming())
	assert.True(t, SequenceDelimitationItem.IsFraming())
	assert.False(t, New(0xFFFE, 0x0001).IsFraming())
	assert.False(t, PixelData.IsFraming())

	assert.True(t, TransferSyntaxUID.IsFileMeta())
	assert.False(t, PatientName.IsFileMeta())

	assert.True(t, New(0x0009, 0x0001).IsPrivate())
	assert.False(t, PatientName.IsPrivate())

	assert.True(t, PatientName.Equals(New(0x0010, 0x0010)))
	assert.False(t, PatientName.Equals(PatientID))
}
