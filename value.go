package gruby

// #include "go-ruby.h"
import "C"
import "strconv"

// Ruby value types, mirroring ruby_value_type
const (
	TypeNone     = C.RUBY_T_NONE
	TypeObject   = C.RUBY_T_OBJECT
	TypeClass    = C.RUBY_T_CLASS
	TypeModule   = C.RUBY_T_MODULE
	TypeFloat    = C.RUBY_T_FLOAT
	TypeString   = C.RUBY_T_STRING
	TypeRegexp   = C.RUBY_T_REGEXP
	TypeArray    = C.RUBY_T_ARRAY
	TypeHash     = C.RUBY_T_HASH
	TypeStruct   = C.RUBY_T_STRUCT
	TypeBignum   = C.RUBY_T_BIGNUM
	TypeFile     = C.RUBY_T_FILE
	TypeData     = C.RUBY_T_DATA
	TypeMatch    = C.RUBY_T_MATCH
	TypeComplex  = C.RUBY_T_COMPLEX
	TypeRational = C.RUBY_T_RATIONAL
	TypeNil      = C.RUBY_T_NIL
	TypeTrue     = C.RUBY_T_TRUE
	TypeFalse    = C.RUBY_T_FALSE
	TypeSymbol   = C.RUBY_T_SYMBOL
	TypeFixnum   = C.RUBY_T_FIXNUM
	TypeUndef    = C.RUBY_T_UNDEF
)

// Value is an opaque reference to a Ruby object. The word is never
// interpreted on the Go side; it is only compared, boxed, or passed back
// into runtime calls.
type Value struct {
	v C.VALUE
}

// ID is an interned Ruby symbol identifier.
type ID struct {
	id C.ID
}

// Type returns the runtime type tag of the value.
func (v Value) Type() int { return int(C.gr_type(v.v)) }

// IsNil reports whether the value is Ruby nil.
func (v Value) IsNil() bool { return C.gr_nil_p(v.v) != 0 }

// IsUndef reports whether the value is the undefined sentinel.
func (v Value) IsUndef() bool { return v.Type() == TypeUndef }

// IsTruthy reports Ruby truthiness: anything but nil and false.
func (v Value) IsTruthy() bool { return C.gr_test(v.v) != 0 }

// IsSpecialConst reports whether the value is an immediate constant:
// fixnums, flonums, static symbols, nil, true, false, undef. Immediates
// are self-contained and never subject to collection, so they must never
// be registered with the collector.
func (v Value) IsSpecialConst() bool { return C.gr_special_const_p(v.v) != 0 }

// IsException reports whether the value is an instance of Exception.
// Valid only on a thread where the runtime is live.
func (v Value) IsException() bool {
	if v.IsSpecialConst() {
		return false
	}
	cls, err := ConstGet(Nil, MustIntern("Exception"))
	if err != nil {
		return false
	}
	ok, err := Funcall(v, MustIntern("is_a?"), cls)
	return err == nil && ok.IsTruthy()
}

// String renders the value word for diagnostics without entering the
// runtime. Use ToS or Inspect for Ruby-level rendering.
func (v Value) String() string {
	return "ruby:0x" + strconv.FormatUint(uint64(v.v), 16)
}

// Symbol returns the symbol value for the id.
func (id ID) Symbol() Value { return Value{C.gr_id2sym(id.id)} }

// SymbolID returns the id behind a symbol value.
func SymbolID(sym Value) ID { return ID{C.gr_sym2id(sym.v)} }

// Predefined immediate values
var (
	Nil   = Value{C.gr_qnil()}
	True  = Value{C.gr_qtrue()}
	False = Value{C.gr_qfalse()}
	Undef = Value{C.gr_qundef()}
)

// BoolValue converts a Go bool to a Ruby value.
func BoolValue(b bool) Value {
	if b {
		return True
	}
	return False
}
