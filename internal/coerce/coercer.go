// Package coerce turns textual tokens into typed call arguments.
package coerce

import (
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"typeprobe/module"
	"typeprobe/primitive"
)

// SliceSeparator separates the elements of a slice token, e.g. "a;b;c".
const SliceSeparator = ";"

// DomainResolver returns the construction strategy of a module type for t
// (T or *T), or nil when t is not a module type.
type DomainResolver func(t reflect.Type) *module.Strategy

// Coercer converts tokens into Values.
type Coercer struct {
	domains DomainResolver
	log     *slog.Logger
}

// Option configures a Coercer.
type Option func(c *Coercer)

// WithDomains lets the coercer build module types from a name token.
func WithDomains(r DomainResolver) Option {
	return func(c *Coercer) {
		c.domains = r
	}
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Coercer) {
		c.log = log
	}
}

// New creates a Coercer.
func New(opts ...Option) *Coercer {
	c := &Coercer{log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Coerce converts the trimmed token to a value of type t.
func (c *Coercer) Coerce(token string, t reflect.Type) (Value, error) {
	token = strings.TrimSpace(token)
	if t == nil {
		return nil, &CoercionError{Kind: Unsupported, Token: token, Target: "<nil>"}
	}

	if s := c.domain(t); s != nil {
		return c.build(s, token, t)
	}

	kind := primitive.FromReflectType(t)
	fail := func(err error) (Value, error) {
		return nil, &CoercionError{Kind: BadFormat, Token: token, Target: t.String(), Err: unwrapNum(err)}
	}

	switch {
	case kind == primitive.KindString, kind == primitive.KindAny:
		return Text(token), nil
	case kind.IsSigned():
		i, err := strconv.ParseInt(token, 10, kind.Bits())
		if err != nil {
			return fail(err)
		}

		return Integer(i), nil
	case kind.IsUnsigned():
		u, err := strconv.ParseUint(token, 10, kind.Bits())
		if err != nil {
			return fail(err)
		}

		return Unsigned(u), nil
	case kind.IsFloat():
		f, err := strconv.ParseFloat(token, kind.Bits())
		if err != nil {
			return fail(err)
		}

		return Float(f), nil
	case kind == primitive.KindBool:
		switch {
		case strings.EqualFold(token, "true"):
			return Boolean(true), nil
		case strings.EqualFold(token, "false"):
			return Boolean(false), nil
		default:
			return fail(fmt.Errorf("%q is neither true nor false", token))
		}
	}

	if !convertible(t) {
		return nil, &CoercionError{Kind: Unsupported, Token: token, Target: t.String()}
	}

	v, err := convert(token, t)
	if err != nil {
		return fail(err)
	}

	return Converted{V: v}, nil
}

// DefaultFor returns the value used for a parameter without a token: the
// zero value for value kinds, Absent for reference kinds.
func (c *Coercer) DefaultFor(t reflect.Type) Value {
	kind := primitive.FromReflectType(t)

	switch {
	case !kind.IsValue():
		return Absent{}
	case kind == primitive.KindString:
		return Text("")
	case kind == primitive.KindBool:
		return Boolean(false)
	case kind.IsSigned():
		return Integer(0)
	case kind.IsUnsigned():
		return Unsigned(0)
	case kind.IsFloat():
		return Float(0)
	default:
		return Converted{V: reflect.Zero(t)}
	}
}

func (c *Coercer) domain(t reflect.Type) *module.Strategy {
	if c.domains == nil {
		return nil
	}

	s := c.domains(t)
	if s == nil || !s.Primary() {
		return nil
	}

	return s
}

func (c *Coercer) build(s *module.Strategy, token string, t reflect.Type) (Value, error) {
	v, err := s.BuildNamed(token)
	if err != nil {
		return nil, &CoercionError{Kind: BadFormat, Token: token, Target: t.String(), Err: err}
	}

	c.log.Debug("built argument", slog.String("constructor", s.Name), slog.String("token", token))

	return Domain{V: v}, nil
}

var (
	textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType    = reflect.TypeFor[time.Duration]()
	timeType        = reflect.TypeFor[time.Time]()
)

// convertible reports whether the generic conversion can produce t from
// text: durations, RFC 3339 times, encoding.TextUnmarshaler
// implementations, and pointers or slices of anything convertible.
func convertible(t reflect.Type) bool {
	switch {
	case t == durationType, t == timeType:
		return true
	case reflect.PointerTo(t).Implements(textUnmarshaler):
		return true
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Slice:
		return scalar(t.Elem()) || convertible(t.Elem())
	default:
		return false
	}
}

func scalar(t reflect.Type) bool {
	kind := primitive.FromReflectType(t)
	return kind.IsNumber() || kind == primitive.KindBool || kind == primitive.KindString
}

func convert(token string, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out.Interface(),
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToWeakSliceHookFunc(SliceSeparator),
		),
	})
	if err != nil {
		return reflect.Value{}, err
	}

	if t.Kind() == reflect.Slice && token == "" {
		return out.Elem(), nil
	}

	if err := decoder.Decode(token); err != nil {
		var de *mapstructure.DecodeError
		if errors.As(err, &de) && de.Name() == "" {
			err = de.Unwrap()
		}

		return reflect.Value{}, err
	}

	return out.Elem(), nil
}

// unwrapNum drops the "strconv.ParseInt: parsing ..." prefix.
func unwrapNum(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Errorf("cannot parse %q: %w", numErr.Num, numErr.Err)
	}

	return err
}
