package chart

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyRegistered is returned when a plugin name is registered twice.
var ErrAlreadyRegistered = errors.New("chart: plugin already registered")

// DefaultColor is the text color applied to every chart element.
const DefaultColor = "#ffffff"

// Plugins the scatter dashboard depends on, in registration order.
const (
	PluginScatter    = "scatter"
	PluginCategory   = "category"
	PluginLinear     = "linear"
	PluginPoint      = "point"
	PluginTitle      = "title"
	PluginTooltip    = "tooltip"
	PluginLegend     = "legend"
	PluginAnnotation = "annotation"
	PluginDataLabels = "datalabels"
)

var defaultPlugins = []string{
	PluginScatter,
	PluginCategory,
	PluginLinear,
	PluginPoint,
	PluginTitle,
	PluginTooltip,
	PluginLegend,
	PluginAnnotation,
	PluginDataLabels,
}

type registry struct {
	mu      sync.RWMutex
	order   []string
	plugins map[string]struct{}
}

var (
	global    = &registry{plugins: make(map[string]struct{})}
	setupOnce sync.Once
)

// Setup registers the dashboard plugins. It is process-wide and runs once;
// later calls are no-ops.
func Setup() {
	setupOnce.Do(func() {
		for _, name := range defaultPlugins {
			if err := global.register(name); err != nil && !errors.Is(err, ErrAlreadyRegistered) {
				panic(err)
			}
		}
	})
}

// Register adds a plugin to the process-wide registry.
func Register(name string) error {
	return global.register(name)
}

// Registered lists registered plugins in registration order.
func Registered() []string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return append([]string(nil), global.order...)
}

func (r *registry) register(name string) error {
	if name == "" {
		return errors.New("chart: empty plugin name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plugins[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.plugins[name] = struct{}{}
	r.order = append(r.order, name)
	return nil
}
