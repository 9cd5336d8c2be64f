package baseline

import (
	"fmt"

	"github.com/cocosip/go-jfif/codec"
)

// Ensure DecodeParameters implements codec.Parameters
var _ codec.Parameters = (*DecodeParameters)(nil)

// Parameter names understood by GetParameter and SetParameter
const (
	ParamDCPredictor      = "dc_predictor"
	ParamStrictComponents = "strict_components"
)

// DecodeParameters contains the options of a baseline decode
type DecodeParameters struct {
	// DCPredictor selects how the running DC predictor is updated after each block
	// - PredictorDifference: predictor holds the last decoded difference (default)
	// - PredictorAbsolute:   predictor holds the last block's DC value (ITU-T T.81)
	DCPredictor PredictorRule

	// StrictComponents turns a frame component count other than 1 or 3 into an
	// error instead of a warning
	StrictComponents bool

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewDecodeParameters creates a new DecodeParameters with default values
func NewDecodeParameters() *DecodeParameters {
	return &DecodeParameters{
		DCPredictor: PredictorDifference,
		params:      make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *DecodeParameters) GetParameter(name string) interface{} {
	switch name {
	case ParamDCPredictor:
		return p.DCPredictor.String()
	case ParamStrictComponents:
		return p.StrictComponents
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters).
// The DC predictor accepts either a PredictorRule or its name.
func (p *DecodeParameters) SetParameter(name string, value interface{}) {
	switch name {
	case ParamDCPredictor:
		switch v := value.(type) {
		case PredictorRule:
			p.DCPredictor = v
		case string:
			rule, err := ParsePredictorRule(v)
			if err != nil {
				rule = predictorInvalid
			}
			p.DCPredictor = rule
		}
	case ParamStrictComponents:
		if v, ok := value.(bool); ok {
			p.StrictComponents = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid
func (p *DecodeParameters) Validate() error {
	switch p.DCPredictor {
	case PredictorDifference, PredictorAbsolute:
		return nil
	default:
		return fmt.Errorf("%w: %s must be %q or %q", codec.ErrInvalidParameter,
			ParamDCPredictor, PredictorDifference, PredictorAbsolute)
	}
}

// WithDCPredictor sets the DC predictor rule and returns the parameters for chaining
func (p *DecodeParameters) WithDCPredictor(rule PredictorRule) *DecodeParameters {
	p.DCPredictor = rule
	return p
}

// WithStrictComponents sets strict component checking and returns the parameters for chaining
func (p *DecodeParameters) WithStrictComponents(strict bool) *DecodeParameters {
	p.StrictComponents = strict
	return p
}

// parametersFrom converts generic codec parameters into DecodeParameters.
func parametersFrom(params codec.Parameters) *DecodeParameters {
	if params == nil {
		return NewDecodeParameters()
	}
	if dp, ok := params.(*DecodeParameters); ok {
		return dp
	}

	// Fallback: copy the known parameters by name
	dp := NewDecodeParameters()
	if v := params.GetParameter(ParamDCPredictor); v != nil {
		dp.SetParameter(ParamDCPredictor, v)
	}
	if v := params.GetParameter(ParamStrictComponents); v != nil {
		dp.SetParameter(ParamStrictComponents, v)
	}
	return dp
}
