package gruby

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFuncallSuccess(t *testing.T) {
	var got string
	err := onRuby(func() error {
		v, err := Funcall(StringValue("hello"), MustIntern("upcase"))
		if err != nil {
			return err
		}
		got = GoString(v)
		return nil
	})
	ExpectNilError(t, err)
	ExpectEql(t, got, "HELLO")
}

func TestFuncallArgs(t *testing.T) {
	var got int64
	err := onRuby(func() error {
		v, err := Funcall(Int64Value(40), MustIntern("+"), Int64Value(2))
		if err != nil {
			return err
		}
		got, err = Int64(v)
		return err
	})
	ExpectNilError(t, err)
	ExpectEql(t, got, int64(42))
}

func TestFuncallRaises(t *testing.T) {
	var isExc bool
	var msg string
	err := onRuby(func() error {
		_, err := Funcall(Int64Value(1), MustIntern("no_such_method_here"))
		if exc, ok := err.(*Exception); ok {
			isExc = exc.Value().IsException()
			msg = exc.Error()
			exc.Free()
			return nil
		}
		return err
	})
	ExpectNilError(t, err)
	Expect(t, isExc, "raised value should be an exception object")
	Expect(t, strings.Contains(msg, "NoMethodError"), "unexpected message: %v", msg)
}

func TestEvalString(t *testing.T) {
	var got int64
	err := onRuby(func() error {
		v, err := EvalString("(1..10).reduce(:+)")
		if err != nil {
			return err
		}
		got, err = Int64(v)
		return err
	})
	ExpectNilError(t, err)
	ExpectEql(t, got, int64(55))
}

func TestEvalStringRaises(t *testing.T) {
	var msg string
	err := onRuby(func() error {
		_, err := EvalString(`raise ArgumentError, "bad input"`)
		if exc, ok := err.(*Exception); ok {
			msg = exc.Error()
			exc.Free()
			return nil
		}
		return err
	})
	ExpectNilError(t, err)
	Expect(t, strings.Contains(msg, "ArgumentError"), "unexpected message: %v", msg)
	Expect(t, strings.Contains(msg, "bad input"), "unexpected message: %v", msg)
}

func TestConstGet(t *testing.T) {
	var pi float64
	err := onRuby(func() error {
		math, err := ConstGet(Nil, MustIntern("Math"))
		if err != nil {
			return err
		}
		v, err := ConstGet(math, MustIntern("PI"))
		if err != nil {
			return err
		}
		pi, err = Float64(v)
		return err
	})
	ExpectNilError(t, err)
	Expect(t, pi > 3.14 && pi < 3.15, "unexpected PI: %v", pi)
}

func TestConstGetMissing(t *testing.T) {
	var failed bool
	err := onRuby(func() error {
		_, err := ConstGet(Nil, MustIntern("NoSuchConstantAnywhere"))
		if exc, ok := err.(*Exception); ok {
			failed = true
			exc.Free()
			return nil
		}
		return err
	})
	ExpectNilError(t, err)
	Expect(t, failed, "missing constant should raise NameError")
}

func TestConstSetAndGetAt(t *testing.T) {
	var got int64
	err := onRuby(func() error {
		if err := ConstSet(Nil, MustIntern("GrubyTestConst"), Int64Value(7)); err != nil {
			return err
		}
		v, err := ConstGetAt(Nil, MustIntern("GrubyTestConst"))
		if err != nil {
			return err
		}
		got, err = Int64(v)
		return err
	})
	ExpectNilError(t, err)
	ExpectEql(t, got, int64(7))
}

func TestCvarGet(t *testing.T) {
	var got string
	err := onRuby(func() error {
		_, err := EvalString(`
			class GrubyCvarHolder
				@@shared = "from cvar"
			end`)
		if err != nil {
			return err
		}
		cls, err := ConstGet(Nil, MustIntern("GrubyCvarHolder"))
		if err != nil {
			return err
		}
		v, err := CvarGet(cls, MustIntern("@@shared"))
		if err != nil {
			return err
		}
		got = GoString(v)
		return nil
	})
	ExpectNilError(t, err)
	ExpectEql(t, got, "from cvar")
}

func TestInspectAndToS(t *testing.T) {
	var ins, tos string
	err := onRuby(func() error {
		v := StringValue("abc")
		i, err := Inspect(v)
		if err != nil {
			return err
		}
		s, err := ToS(v)
		if err != nil {
			return err
		}
		ins = GoString(i)
		tos = GoString(s)
		return nil
	})
	ExpectNilError(t, err)
	ExpectEql(t, ins, `"abc"`)
	ExpectEql(t, tos, "abc")
}

func TestToArrayToHash(t *testing.T) {
	var arrLen, hashLen int64
	err := onRuby(func() error {
		arr, err := ToArray(Int64Value(5))
		if err != nil {
			return err
		}
		n, err := Funcall(arr, MustIntern("length"))
		if err != nil {
			return err
		}
		if arrLen, err = Int64(n); err != nil {
			return err
		}

		h, err := ToHash(Nil)
		if err != nil {
			return err
		}
		n, err = Funcall(h, MustIntern("length"))
		if err != nil {
			return err
		}
		hashLen, err = Int64(n)
		return err
	})
	ExpectNilError(t, err)
	ExpectEql(t, arrLen, int64(1))
	ExpectEql(t, hashLen, int64(0))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gruby_load_test.rb")
	if err := os.WriteFile(path, []byte("$gruby_loaded = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var got int64
	err := onRuby(func() error {
		if err := LoadFile(path, false); err != nil {
			return err
		}
		v, err := EvalString("$gruby_loaded")
		if err != nil {
			return err
		}
		got, err = Int64(v)
		return err
	})
	ExpectNilError(t, err)
	ExpectEql(t, got, int64(99))
}

func TestLoadFileMissing(t *testing.T) {
	var failed bool
	err := onRuby(func() error {
		err := LoadFile("/no/such/file.rb", false)
		if exc, ok := err.(*Exception); ok {
			failed = true
			exc.Free()
			return nil
		}
		return err
	})
	ExpectNilError(t, err)
	Expect(t, failed, "loading a missing file should raise LoadError")
}

func TestIntern(t *testing.T) {
	var same bool
	err := onRuby(func() error {
		a, err := Intern("gruby_interned")
		if err != nil {
			return err
		}
		b, err := Intern("gruby_interned")
		if err != nil {
			return err
		}
		same = a == b
		return nil
	})
	ExpectNilError(t, err)
	Expect(t, same, "interning the same name twice should yield the same id")
}

func TestProcCall(t *testing.T) {
	var got int64
	err := onRuby(func() error {
		p, err := EvalString("->(x) { x * 2 }")
		if err != nil {
			return err
		}
		v, err := ProcCall(p, []Value{Int64Value(21)}, Nil)
		if err != nil {
			return err
		}
		got, err = Int64(v)
		return err
	})
	ExpectNilError(t, err)
	ExpectEql(t, got, int64(42))
}

func TestProcCallWithBlock(t *testing.T) {
	var got int64
	err := onRuby(func() error {
		p, err := EvalString("proc { |x, &b| b.call(x) + 1 }")
		if err != nil {
			return err
		}
		blk, err := EvalString("->(x) { x * 10 }")
		if err != nil {
			return err
		}
		v, err := ProcCall(p, []Value{Int64Value(4)}, blk)
		if err != nil {
			return err
		}
		got, err = Int64(v)
		return err
	})
	ExpectNilError(t, err)
	ExpectEql(t, got, int64(41))
}
