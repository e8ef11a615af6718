package vr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUses32BitLength(t *testing.T) {
	for _, v := range []VR{OB, OW, OF, SQ, UN, OX} {
		assert.True(t, v.Uses32BitLength(), "%s", v)
	}
	for _, v := range []VR{AE, AT, CS, DS, FD, FL, IS, LO, OD, PN, SH, SL, SS, UI, UL, US, UT} {
		assert.False(t, v.Uses32BitLength(), "%s", v)
	}
}

func TestIsRecognized(t *testing.T) {
	assert.True(t, IsRecognized("PN"))
	assert.True(t, IsRecognized("OB"))
	assert.False(t, IsRecognized("ZZ"))
	assert.False(t, IsRecognized("pn"))
	// the internal markers are not wire VRs
	assert.False(t, IsRecognized("ox"))
	assert.False(t, IsRecognized("pi"))
	assert.False(t, IsRecognized("na"))
}

func TestStringClasses(t *testing.T) {
	assert.True(t, PN.IsString())
	assert.True(t, UI.IsString())
	assert.False(t, US.IsString())
	assert.False(t, SQ.IsString())

	assert.True(t, PN.IsText())
	assert.True(t, UT.IsText())
	assert.False(t, UI.IsText())
	assert.False(t, CS.IsText())
}
