// Package app contains the application services that orchestrate the domain
// repositories. Handlers call into this package; it owns the weekly award
// policy, redemption flow, validation, and points accounting, and stays free
// of transport and storage concerns.
package app
