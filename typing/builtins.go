package typing

// Builtins are the named integral and real types every compilation resolves
// without a declaration. Each accessor goes through the Interner so the
// returned pointer participates in the same canonicalization as any
// user-written equivalent width/sign/four-state combination -- `bit` and a
// user's `logic [0:0]` with fourState forced off intern to the same
// IntegralType pointer whenever their triples match.
func (in *Interner) Bit() *IntegralType    { return in.GetIntegral(1, false, false) }
func (in *Interner) Logic() *IntegralType  { return in.GetIntegral(1, false, true) }
func (in *Interner) Reg() *IntegralType    { return in.GetIntegral(1, false, true) }

func (in *Interner) Byte() *IntegralType     { return in.GetIntegral(8, true, false) }
func (in *Interner) ShortInt() *IntegralType { return in.GetIntegral(16, true, false) }
func (in *Interner) Int() *IntegralType      { return in.GetIntegral(32, true, false) }
func (in *Interner) LongInt() *IntegralType  { return in.GetIntegral(64, true, false) }
func (in *Interner) Integer() *IntegralType  { return in.GetIntegral(32, true, true) }
func (in *Interner) Time() *IntegralType     { return in.GetIntegral(64, false, true) }

func (in *Interner) Real() *RealType      { return in.GetReal(false) }
func (in *Interner) RealTime() *RealType  { return in.GetReal(false) }
func (in *Interner) ShortReal() *RealType { return in.GetReal(true) }
