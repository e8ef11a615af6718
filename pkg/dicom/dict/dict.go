// Package dict provides the DICOM data dictionary used to recover VRs
// under implicit encoding and to name elements.
package dict

import (
	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
	"github.com/jpfielding/dicom.go/pkg/dicom/vr"
)

// Entry describes one dictionary attribute
type Entry struct {
	VR      vr.VR
	VM      string
	Keyword string
	Retired bool
}

// Dictionary maps (group,element), packed as group<<16|element, to its
// attribute description. It is read-only once built and safe to share
// across goroutines.
type Dictionary map[uint32]Entry

func pack(t tag.Tag) uint32 {
	return uint32(t.Group)<<16 | uint32(t.Element)
}

// Lookup returns the entry for a tag. Misses return found=false; the
// decoder treats a miss as VR UN.
func (d Dictionary) Lookup(t tag.Tag) (Entry, bool) {
	e, found := d[pack(t)]
	return e, found
}

// ByKeyword resolves a keyword back to its tag via a linear scan
func (d Dictionary) ByKeyword(keyword string) (tag.Tag, bool) {
	for packed, e := range d {
		if e.Keyword == keyword {
			return tag.New(uint16(packed>>16), uint16(packed)), true
		}
	}
	return tag.Tag{}, false
}

// standard is the process-lifetime default dictionary. It covers the
// file meta group and the attributes commonly present in image SOP
// instances; tags outside it decode as UN.
var standard = Dictionary{}

func add(t tag.Tag, v vr.VR, vm, keyword string) {
	standard[pack(t)] = Entry{VR: v, VM: vm, Keyword: keyword}
}

// Standard returns the built-in dictionary. Callers must not modify it.
func Standard() Dictionary {
	return standard
}

func init() {
	// File Meta Information (group 0002)
	add(tag.FileMetaInformationGroupLength, vr.UL, "1", "FileMetaInformationGroupLength")
	add(tag.FileMetaInformationVersion, vr.OB, "1", "FileMetaInformationVersion")
	add(tag.MediaStorageSOPClassUID, vr.UI, "1", "MediaStorageSOPClassUID")
	add(tag.MediaStorageSOPInstanceUID, vr.UI, "1", "MediaStorageSOPInstanceUID")
	add(tag.TransferSyntaxUID, vr.UI, "1", "TransferSyntaxUID")
	add(tag.ImplementationClassUID, vr.UI, "1", "ImplementationClassUID")
	add(tag.ImplementationVersionName, vr.SH, "1", "ImplementationVersionName")

	// Identification / study context (group 0008)
	add(tag.SpecificCharacterSet, vr.CS, "1-n", "SpecificCharacterSet")
	add(tag.New(0x0008, 0x0008), vr.CS, "2-n", "ImageType")
	add(tag.New(0x0008, 0x0012), vr.DA, "1", "InstanceCreationDate")
	add(tag.New(0x0008, 0x0013), vr.TM, "1", "InstanceCreationTime")
	add(tag.SOPClassUID, vr.UI, "1", "SOPClassUID")
	add(tag.SOPInstanceUID, vr.UI, "1", "SOPInstanceUID")
	add(tag.StudyDate, vr.DA, "1", "StudyDate")
	add(tag.New(0x0008, 0x0021), vr.DA, "1", "SeriesDate")
	add(tag.StudyTime, vr.TM, "1", "StudyTime")
	add(tag.New(0x0008, 0x0031), vr.TM, "1", "SeriesTime")
	add(tag.AccessionNumber, vr.SH, "1", "AccessionNumber")
	add(tag.Modality, vr.CS, "1", "Modality")
	add(tag.New(0x0008, 0x0070), vr.LO, "1", "Manufacturer")
	add(tag.New(0x0008, 0x0080), vr.LO, "1", "InstitutionName")
	add(tag.New(0x0008, 0x0090), vr.PN, "1", "ReferringPhysicianName")
	add(tag.CodeValue, vr.SH, "1", "CodeValue")
	add(tag.New(0x0008, 0x0102), vr.SH, "1", "CodingSchemeDesignator")
	add(tag.New(0x0008, 0x0104), vr.LO, "1", "CodeMeaning")
	add(tag.New(0x0008, 0x1010), vr.SH, "1", "StationName")
	add(tag.StudyDescription, vr.LO, "1", "StudyDescription")
	add(tag.SeriesDescription, vr.LO, "1", "SeriesDescription")
	add(tag.New(0x0008, 0x1090), vr.LO, "1", "ManufacturerModelName")
	add(tag.New(0x0008, 0x1140), vr.SQ, "1", "ReferencedImageSequence")
	add(tag.New(0x0008, 0x1150), vr.UI, "1", "ReferencedSOPClassUID")
	add(tag.New(0x0008, 0x1155), vr.UI, "1", "ReferencedSOPInstanceUID")

	// Patient (group 0010)
	add(tag.PatientName, vr.PN, "1", "PatientName")
	add(tag.PatientID, vr.LO, "1", "PatientID")
	add(tag.PatientBirthDate, vr.DA, "1", "PatientBirthDate")
	add(tag.PatientSex, vr.CS, "1", "PatientSex")
	add(tag.New(0x0010, 0x1010), vr.AS, "1", "PatientAge")
	add(tag.New(0x0010, 0x1030), vr.DS, "1", "PatientWeight")
	add(tag.New(0x0010, 0x4000), vr.LT, "1", "PatientComments")

	// Acquisition (group 0018)
	add(tag.New(0x0018, 0x0050), vr.DS, "1", "SliceThickness")
	add(tag.New(0x0018, 0x0060), vr.DS, "1", "KVP")
	add(tag.New(0x0018, 0x0088), vr.DS, "1", "SpacingBetweenSlices")
	add(tag.New(0x0018, 0x1000), vr.LO, "1", "DeviceSerialNumber")
	add(tag.New(0x0018, 0x1020), vr.LO, "1-n", "SoftwareVersions")
	add(tag.New(0x0018, 0x1030), vr.LO, "1", "ProtocolName")
	add(tag.New(0x0018, 0x1150), vr.IS, "1", "ExposureTime")
	add(tag.New(0x0018, 0x1151), vr.IS, "1", "XRayTubeCurrent")
	add(tag.New(0x0018, 0x5100), vr.CS, "1", "PatientPosition")

	// Relationship (group 0020)
	add(tag.StudyInstanceUID, vr.UI, "1", "StudyInstanceUID")
	add(tag.SeriesInstanceUID, vr.UI, "1", "SeriesInstanceUID")
	add(tag.New(0x0020, 0x0010), vr.SH, "1", "StudyID")
	add(tag.New(0x0020, 0x0011), vr.IS, "1", "SeriesNumber")
	add(tag.InstanceNumber, vr.IS, "1", "InstanceNumber")
	add(tag.New(0x0020, 0x0032), vr.DS, "3", "ImagePositionPatient")
	add(tag.New(0x0020, 0x0037), vr.DS, "6", "ImageOrientationPatient")
	add(tag.New(0x0020, 0x0052), vr.UI, "1", "FrameOfReferenceUID")
	add(tag.New(0x0020, 0x1041), vr.DS, "1", "SliceLocation")

	// Image pixel (group 0028)
	add(tag.SamplesPerPixel, vr.US, "1", "SamplesPerPixel")
	add(tag.PhotometricInterpretation, vr.CS, "1", "PhotometricInterpretation")
	add(tag.NumberOfFrames, vr.IS, "1", "NumberOfFrames")
	add(tag.Rows, vr.US, "1", "Rows")
	add(tag.Columns, vr.US, "1", "Columns")
	add(tag.PixelSpacing, vr.DS, "2", "PixelSpacing")
	add(tag.BitsAllocated, vr.US, "1", "BitsAllocated")
	add(tag.BitsStored, vr.US, "1", "BitsStored")
	add(tag.HighBit, vr.US, "1", "HighBit")
	add(tag.PixelRepresentation, vr.US, "1", "PixelRepresentation")
	add(tag.New(0x0028, 0x1050), vr.DS, "1-n", "WindowCenter")
	add(tag.New(0x0028, 0x1051), vr.DS, "1-n", "WindowWidth")
	add(tag.New(0x0028, 0x1052), vr.DS, "1", "RescaleIntercept")
	add(tag.New(0x0028, 0x1053), vr.DS, "1", "RescaleSlope")

	// Procedure context (group 0040)
	add(tag.RequestAttributesSequence, vr.SQ, "1", "RequestAttributesSequence")
	add(tag.New(0x0040, 0x0009), vr.SH, "1", "ScheduledProcedureStepID")
	add(tag.New(0x0040, 0x1001), vr.SH, "1", "RequestedProcedureID")
	add(tag.ConceptNameCodeSequence, vr.SQ, "1", "ConceptNameCodeSequence")
	add(tag.New(0x0040, 0xA160), vr.UT, "1", "TextValue")

	// Pixel data: OB/OW cannot be told apart under implicit encoding,
	// so the entry carries the decoder's ox marker.
	add(tag.PixelData, vr.OX, "1", "PixelData")

	// Framing pseudo-attributes (group FFFE)
	add(tag.Item, vr.NA, "1", "Item")
	add(tag.ItemDelimitationItem, vr.NA, "1", "ItemDelimitationItem")
	add(tag.SequenceDelimitationItem, vr.NA, "1", "SequenceDelimitationItem")
}
