// Package admin serves the travel agency back office: the dashboard, the
// users table and its CSV export, and the create-trip form.
//
// Handlers render server-side pages and HTMX fragments. Trip form state lives
// in per-visit form sessions keyed by a cookie; each session owns a
// form.Controller that runs the submission state machine.
package admin
