// Package ports defines the interfaces (ports) that connect the diagnostic
// core to infrastructure adapters.
//
// In Hexagonal Architecture, ports are the boundaries between the application
// core and the outside world. They define what the core needs from external
// systems without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [SampleSource]: Acquires raw shunt-voltage batches from hardware
//   - [ReferenceProvider]: Supplies the independently measured truth current
//   - [RangeCatalog]: Lists the acquisition ranges a device supports
//   - [ReportSink]: Receives the rendered diagnostic report
//
// The core (internal/app, internal/analysis) depends only on these
// interfaces. Adapters (internal/adapters) implement them with concrete
// implementations (static tables, retrying decorators, file sinks, PDF).
// Real acquisition hardware is deliberately outside this module; a hardware
// driver is just another SampleSource implementation.
package ports
