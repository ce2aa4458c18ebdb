package schema

import "fmt"

// Record strides and header lengths of the little-endian DASTCOM5 files.
// The header lives in the first record slot, so record data starts at
// offset stride.
const (
	AsteroidStride     = 835
	CometStride        = 976
	AsteroidHeaderSize = 86
	CometHeaderSize    = 82
)

// AsteroidSchema is the layout of one dast5_le.dat record.
var AsteroidSchema = mustNew("asteroid", concat(
	elementBlock(),
	srcFields(45),
	flagFields(),
	[]Field{
		i16("NDEL"),
		i16("NDOP"),
		f32("H"),
		f32("G"),
		f32("A1"),
		f32("A2"),
		f32("A3"),
		f32("R0"),
		f32("ALN"),
		f32("NM"),
		f32("NN"),
		f32("NK"),
		f32("LGK"),
		f32("RHO"),
		f32("AMRAT"),
		f32("ALF"),
		f32("DEL"),
		f32("SPHLM3"),
		f32("SPHLM5"),
		f32("RP"),
		f32("GM"),
		f32("RAD"),
		f32("EXTNT1"),
		f32("EXTNT2"),
		f32("EXTNT3"),
		f32("MOID"),
		f32("ALBEDO"),
		f32("BVCI"),
		f32("UBCI"),
		f32("IRCI"),
		f32("RMSW"),
		f32("RMSU"),
		f32("RMSN"),
		f32("RMSNT"),
		f32("RMSH"),
		str("EQUNOX", 4),
		str("PENAM", 6),
		str("SBNAM", 12),
		str("SPTYPT", 5),
		str("SPTYPS", 5),
		str("DARC", 9),
		str("COMNT1", 41),
		str("COMNT2", 80),
		str("DESIG", 13),
		str("ASTEST", 8),
		str("IREF", 10),
		str("ASTNAM", 18),
	},
)...)

// CometSchema is the layout of one dcom5_le.dat record.
var CometSchema = mustNew("comet", concat(
	elementBlock(),
	srcFields(55),
	flagFields(),
	[]Field{
		i16("IPYR"),
		i16("NDEL"),
		i16("NDOP"),
		i16("NOBSMT"),
		i16("NOBSMN"),
		f32("H"),
		f32("G"),
		f32("M1 (MT)"),
		f32("M2 (MN)"),
		f32("K1 (MTSMT)"),
		f32("K2 (MNSMT)"),
		f32("PHCOF (MNP)"),
		f32("A1"),
		f32("A2"),
		f32("A3"),
		f32("DT"),
		f32("R0"),
		f32("ALN"),
		f32("NM"),
		f32("NN"),
		f32("NK"),
		f32("S0"),
		f32("TCL"),
		f32("RHO"),
		f32("AMRAT"),
		f32("AJ1"),
		f32("AJ2"),
		f32("ET1"),
		f32("ET2"),
		f32("DTH"),
		f32("ALF"),
		f32("DEL"),
		f32("SPHLM3"),
		f32("SPHLM5"),
		f32("RP"),
		f32("GM"),
		f32("RAD"),
		f32("EXTNT1"),
		f32("EXTNT2"),
		f32("EXTNT3"),
		f32("MOID"),
		f32("ALBEDO"),
		f32("RMSW"),
		f32("RMSU"),
		f32("RMSN"),
		f32("RMSNT"),
		f32("RMSMT"),
		f32("RMSMN"),
		str("EQUNOX", 4),
		str("PENAM", 6),
		str("SBNAM", 12),
		str("DARC", 9),
		str("COMNT3", 49),
		str("COMNT2", 80),
		str("DESIG", 13),
		str("COMEST", 14),
		str("IREF", 10),
		str("COMNAM", 29),
	},
)...)

// AsteroidHeaderSchema is the first slot of dast5_le.dat. Boundary markers
// are stored as 8 byte ASCII numbers.
var AsteroidHeaderSchema = mustNew("asteroid header", concat(
	[]Field{i32("IBIAS1")},
	boundaryFields(),
	[]Field{
		str("CALDATE", 19),
		f64("JDDATE"),
		str("FTYP", 1),
		i16("BYTE2A"),
		i32("IBIAS0"),
	},
)...)

// CometHeaderSchema is the first slot of dcom5_le.dat.
var CometHeaderSchema = mustNew("comet header", concat(
	[]Field{i32("IBIAS2")},
	boundaryFields(),
	[]Field{
		str("CALDATE", 19),
		f64("JDDATE"),
		str("FTYP", 1),
		i16("BYTE2C"),
	},
)...)

// EntireProjection selects the fields shared by asteroids and comets: the
// orbital element block, H, MOID, designation, reference and name.
var EntireProjection = func() []Projection {
	var proj []Projection
	for _, f := range elementBlock() {
		proj = append(proj, Same(f.Name))
	}
	return append(proj,
		Same("H"),
		Same("MOID"),
		Same("DESIG"),
		Same("IREF"),
		Projection{As: "NAME", From: [2]string{"ASTNAM", "COMNAM"}},
	)
}()

// elementBlock is the prefix shared field-for-field by both record layouts.
func elementBlock() []Field {
	return []Field{
		i32("NO"),
		i32("NOBS"),
		i32("OBSFRST"),
		i32("OBSLAST"),
		f64("EPOCH"),
		f64("CALEPO"),
		f64("MA"),
		f64("W"),
		f64("OM"),
		f64("IN"),
		f64("EC"),
		f64("A"),
		f64("QR"),
		f64("TP"),
		f64("TPCAL"),
		f64("TPFRAC"),
		f64("SOLDAT"),
	}
}

func srcFields(n int) []Field {
	fields := make([]Field, n)
	for i := range fields {
		fields[i] = f64(fmt.Sprintf("SRC%d", i+1))
	}
	return fields
}

func flagFields() []Field {
	return []Field{
		i8("PRELTV"),
		i8("SPHMX3"),
		i8("SPHMX5"),
		i8("JGSEP"),
		i8("TWOBOD"),
		i8("NSATS"),
		i8("UPARM"),
		i8("LSRC"),
	}
}

func boundaryFields() []Field {
	return []Field{
		str("BEGINP1", 8),
		str("BEGINP2", 8),
		str("BEGINP3", 8),
		str("ENDPT1", 8),
		str("ENDPT2", 8),
		str("ENDPT3", 8),
	}
}

func concat(groups ...[]Field) []Field {
	var out []Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
