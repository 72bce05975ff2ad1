// Package export is the outermost shell of the runtime: it owns the live
// instances behind opaque handles and exposes the FMI entry points in
// their C-API shape, with every outcome collapsed to a status code.
// Diagnostics travel through the instance logger, not the return value.
package export
