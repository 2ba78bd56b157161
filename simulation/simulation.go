// Package simulation wires an engine, a data recorder, a task tracer and an
// optional monitor into one object that a run can be built around.
package simulation

import (
	"context"
	"log"
	"time"

	"github.com/sarchlab/sumpaxi/datarecording"
	"github.com/sarchlab/sumpaxi/monitoring"
	"github.com/sarchlab/sumpaxi/sim/modeling"
	"github.com/sarchlab/sumpaxi/sim/timing"
	"github.com/sarchlab/sumpaxi/tracing"
)

// A Simulation provides the service requires to define a simulation.
type Simulation struct {
	id         string
	outputPath string
	engine     timing.Engine

	dataRecorder datarecording.DataRecorder
	monitor      *monitoring.Monitor
	monitorURL   string
	visTracer    *tracing.DBTracer

	components    []modeling.Component
	compNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// OutputFile returns the path of the recording database.
func (s *Simulation) OutputFile() string {
	return s.outputPath + ".sqlite3"
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() timing.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation, or nil if
// monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitoring server, or "".
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// GetVisTracer returns the tracer used in the simulation.
func (s *Simulation) GetVisTracer() *tracing.DBTracer {
	return s.visTracer
}

// RegisterComponent registers a component with the simulation. The
// component's tasks are recorded and the component is exposed to the
// monitor.
func (s *Simulation) RegisterComponent(c modeling.Component) {
	compName := c.Name()
	if _, exists := s.compNameIndex[compName]; exists {
		log.Panicf("component %s already registered", compName)
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	if domain, ok := c.(tracing.NamedHookable); ok {
		tracing.CollectTrace(domain, s.visTracer)
	}

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// GetComponentByName returns the component with the given name, or nil.
func (s *Simulation) GetComponentByName(name string) modeling.Component {
	i, ok := s.compNameIndex[name]
	if !ok {
		return nil
	}

	return s.components[i]
}

// Components returns all the registered components.
func (s *Simulation) Components() []modeling.Component {
	return s.components
}

// Terminate finishes the trace, closes the recorder and stops the monitor.
func (s *Simulation) Terminate() {
	s.visTracer.Terminate()

	err := s.dataRecorder.Close()
	if err != nil {
		log.Printf("closing recorder: %s", err)
	}

	if s.monitor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		err = s.monitor.StopServer(ctx)
		if err != nil {
			log.Printf("stopping monitor: %s", err)
		}
	}
}
