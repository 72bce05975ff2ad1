package instance

import (
	"fmt"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/model"
)

// Context is the per-instance runtime surface: the logging enable map and
// sink, the resource path, and the simulation clock. A Co-Simulation
// instance that wraps a Model-Exchange model additionally carries solver
// scratch state in wrapper; the variant is chosen once at construction and
// never changes.
type Context struct {
	loggingOn    map[fmi.Category]bool
	logMessage   fmi.LogCallback
	resourcePath string
	startTime    float64
	time         float64
	stopTime     float64
	hasStopTime  bool

	// wrapper is nil for plain Model-Exchange instances.
	wrapper *wrapperState
}

// wrapperState is the Co-Simulation bookkeeping of the embedded fixed-step
// solver. Buffers are sized once from the model descriptor and mutated in
// place for the life of the instance.
type wrapperState struct {
	numSteps               int
	earlyReturnAllowed     bool
	eventModeUsed          bool
	nextCommunicationPoint float64
	// curZ and preZ hold the current and previous event-indicator samples.
	curZ []float64
	preZ []float64
	// x and dx are the continuous-state and derivative scratch vectors.
	x  []float64
	dx []float64
}

func newBasicContext(desc model.Descriptor, loggingOn bool, logMessage fmi.LogCallback, resourcePath string) *Context {
	if logMessage == nil {
		logMessage = fmi.DiscardLog
	}
	enabled := make(map[fmi.Category]bool)
	for _, cat := range desc.AllCategories() {
		enabled[cat] = loggingOn
	}
	return &Context{
		loggingOn:    enabled,
		logMessage:   logMessage,
		resourcePath: resourcePath,
	}
}

func newWrapperContext(desc model.Descriptor, loggingOn bool, logMessage fmi.LogCallback, resourcePath string, eventModeUsed, earlyReturnAllowed bool) *Context {
	ctx := newBasicContext(desc, loggingOn, logMessage, resourcePath)
	ctx.wrapper = &wrapperState{
		earlyReturnAllowed: earlyReturnAllowed,
		eventModeUsed:      eventModeUsed,
		curZ:               make([]float64, desc.EventIndicatorCount),
		preZ:               make([]float64, desc.EventIndicatorCount),
		x:                  make([]float64, desc.StateCount),
		dx:                 make([]float64, desc.StateCount),
	}
	return ctx
}

// LoggingOn reports whether a category is enabled.
func (c *Context) LoggingOn(category fmi.Category) bool {
	return c.loggingOn[category]
}

// SetLogging toggles one category. Unknown categories are an error.
func (c *Context) SetLogging(category fmi.Category, enabled bool) error {
	if _, ok := c.loggingOn[category]; !ok {
		return fmt.Errorf("unknown logging category %q", category)
	}
	c.loggingOn[category] = enabled
	return nil
}

// Log forwards a message to the sink if the category is enabled.
func (c *Context) Log(status fmi.Status, category fmi.Category, format string, args ...any) {
	if !c.loggingOn[category] {
		return
	}
	c.logMessage(status, category, fmt.Sprintf(format, args...))
}

// ResourcePath is the directory holding the FMU's resources.
func (c *Context) ResourcePath() string { return c.resourcePath }

// Time returns the current simulation time.
func (c *Context) Time() float64 { return c.time }

// StopTime returns the negotiated stop time, if one was defined.
func (c *Context) StopTime() (float64, bool) { return c.stopTime, c.hasStopTime }

func (c *Context) initialize(startTime float64, stopTime *float64) {
	c.startTime = startTime
	c.time = startTime
	if stopTime != nil {
		c.stopTime = *stopTime
		c.hasStopTime = true
	} else {
		c.stopTime = 0
		c.hasStopTime = false
	}
	if c.wrapper != nil {
		c.wrapper.nextCommunicationPoint = startTime
	}
}

func (c *Context) reset() {
	c.startTime = 0
	c.time = 0
	c.stopTime = 0
	c.hasStopTime = false
	if w := c.wrapper; w != nil {
		w.numSteps = 0
		w.nextCommunicationPoint = 0
		for i := range w.curZ {
			w.curZ[i] = 0
			w.preZ[i] = 0
		}
	}
}

var _ model.Context = (*Context)(nil)
