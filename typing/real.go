package typing

// RealType distinguishes the two real-number representations in the
// language: real/realtime (double precision) and shortreal (single
// precision). Both interned as singletons since they carry no further
// structure.
type RealType struct {
	Short bool
}

func (r *RealType) Kind() Kind {
	if r.Short {
		return KindShortReal
	}
	return KindReal
}

func (r *RealType) Repr() string {
	if r.Short {
		return "shortreal"
	}
	return "real"
}
