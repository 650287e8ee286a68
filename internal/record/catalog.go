package record

import "fmt"

// Sids that act as milestones when walking a record stream.
const (
	SidPLS             uint16 = 0x004D
	SidSheetPr         uint16 = 0x0081
	SidStandardWidth   uint16 = 0x0099
	SidSCL             uint16 = 0x00A0
	SidBitmap          uint16 = 0x00E9
	SidPhoneticPr      uint16 = 0x00EF
	SidLabelRanges     uint16 = 0x015F
	SidQuickTip        uint16 = 0x0800
	SidSheetExt        uint16 = 0x0862 // SHEETLAYOUT in some readers
	SidSheetProtection uint16 = 0x0867
	SidRangeProtection uint16 = 0x0868
)

// Chart sub-records share this numeric window with top-level sids.
const (
	SubRecordFirst uint16 = 0x1000
	SubRecordLast  uint16 = 0x1070
)

const unknownRecordName = "UNKNOWNRECORD"

// Tier is the classification confidence of a sid.
type Tier int

const (
	TierUnknown Tier = iota
	TierObserved
	TierDocumented
)

func (t Tier) String() string {
	switch t {
	case TierDocumented:
		return "documented"
	case TierObserved:
		return "observed"
	default:
		return "unknown"
	}
}

// Name is the diagnostic identity of a sid.
type Name struct {
	Text string
	Tier Tier
}

// Known but uninterpreted record types. Remove an entry when a structured
// record takes over its sid.
var documentedNames = map[uint16]string{
	SidPLS:             "PLS",
	0x0050:             "DCON",
	0x007F:             "IMDATA",
	SidSheetPr:         "SHEETPR",
	0x0090:             "SORT",
	0x0094:             "LHRECORD",
	SidStandardWidth:   "STANDARDWIDTH",
	0x009D:             "AUTOFILTERINFO",
	SidSCL:             "SCL",
	0x00AE:             "SCENMAN",
	0x00D3:             "OBPROJ",
	0x00DC:             "PARAMQRY",
	0x00DE:             "OLESIZE",
	SidBitmap:          "BITMAP",
	SidPhoneticPr:      "PHONETICPR",
	SidLabelRanges:     "LABELRANGES",
	0x01BA:             "CODENAME",
	0x01A9:             "USERBVIEW",
	0x01AA:             "USERSVIEWBEGIN",
	0x01AB:             "USERSVIEWEND",
	0x01AD:             "QSI",
	0x01C0:             "EXCEL9FILE",
	0x0802:             "QSISXTAG",
	0x0803:             "DBQUERYEXT",
	0x0805:             "TXTQUERY",
	SidQuickTip:        "QUICKTIP",
	0x0850:             "CHARTFRTINFO",
	0x0852:             "STARTBLOCK",
	0x0853:             "ENDBLOCK",
	0x0856:             "CATLAB",
	SidSheetExt:        "SHEETEXT",
	0x0863:             "BOOKEXT",
	SidSheetProtection: "SHEETPROTECTION",
	SidRangeProtection: "RANGEPROTECTION",
	0x086B:             "DATALABEXTCONTENTS",
	0x086C:             "CELLWATCH",
	0x0874:             "DROPDOWNOBJIDS",
	0x0876:             "DCONN",
	0x087B:             "CFEX",
	0x087C:             "XFCRC",
	0x087D:             "XFEXT",
	0x088B:             "PLV",
	0x088C:             "COMPAT12",
	0x088D:             "DXF",
	0x088E:             "TABLESTYLES",
	0x0892:             "STYLEEXT",
	0x0896:             "THEME",
	0x0897:             "GUIDTYPELIB",
	0x089A:             "MTRSETTINGS",
	0x089B:             "COMPRESSPICTURES",
	0x089C:             "HEADERFOOTER",
	0x08A3:             "FORCEFULLCALCULATION",
	0x08A4:             "SHAPEPROPSSTREAM",
	0x08A5:             "TEXTPROPSSTREAM",
	0x08A6:             "RICHTEXTSTREAM",
	0x08C8:             "PLV{Mac Excel}",
	0x1051:             "SHAPEPROPSSTREAM",
}

// Sids seen in real files with no published meaning.
var observedUndocumented = map[uint16]struct{}{
	0x0033: {}, // 2 bytes: 0x0001 or 0x0003
	0x0034: {}, // MS Access: "[Microsoft JET Created Table]0021010", before WINDOW2
	0x01BD: {},
	0x01C2: {}, // Excel 2007, multiple of 12 bytes, before WINDOW2 or drawing records
	0x089D: {},
	0x089E: {},
	0x08A7: {},

	0x1001: {},
	0x1006: {},
	0x1007: {},
	0x1009: {},
	0x100A: {},
	0x100B: {},
	0x100C: {},
	0x1014: {},
	0x1017: {},
	0x1018: {},
	0x1019: {},
	0x101A: {},
	0x101B: {},
	0x101D: {},
	0x101E: {},
	0x101F: {},
	0x1020: {},
	0x1021: {},
	0x1022: {},
	0x1024: {},
	0x1025: {},
	0x1026: {},
	0x1027: {},
	0x1032: {},
	0x1033: {},
	0x1034: {},
	0x1035: {},
	0x103A: {},
	0x1041: {},
	0x1043: {},
	0x1044: {},
	0x1045: {},
	0x1046: {},
	0x104A: {},
	0x104B: {},
	0x104E: {},
	0x104F: {},
	0x1051: {},
	0x105C: {},
	0x105D: {},
	0x105F: {},
	0x1060: {},
	0x1062: {},
	0x1063: {},
	0x1064: {},
	0x1065: {},
	0x1066: {},
}

// DocumentedName returns the published name of a known but uninterpreted sid.
func DocumentedName(sid uint16) (string, bool) {
	name, ok := documentedNames[sid]
	return name, ok
}

// IsObservedUndocumented reports whether sid has been seen in real files
// without a published meaning. It says nothing about whether the sid is a
// standalone record or a sub-record.
func IsObservedUndocumented(sid uint16) bool {
	_, ok := observedUndocumented[sid]
	return ok
}

// InSubRecordRange reports whether sid falls in the window shared with chart
// sub-records.
func InSubRecordRange(sid uint16) bool {
	return sid >= SubRecordFirst && sid <= SubRecordLast
}

// Classify names sid, preferring the documented tier over the observed one.
func Classify(sid uint16) Name {
	if name, ok := DocumentedName(sid); ok {
		return Name{Text: name, Tier: TierDocumented}
	}
	if IsObservedUndocumented(sid) {
		return Name{Text: "UNKNOWN-" + hexSid(sid), Tier: TierObserved}
	}
	return Name{Text: unknownRecordName, Tier: TierUnknown}
}

func hexSid(sid uint16) string {
	return fmt.Sprintf("%X", sid)
}
