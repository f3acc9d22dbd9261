// Package http provides HTTP handlers and middleware for the work time API.
//
// The router exposes the following endpoints:
//   - POST /register: creates an employee account. Body: {"username","password",
//     "email","role"}. Returns 201 with a confirmation message.
//   - POST /login: verifies credentials. Body: {"username","password"}. Returns the
//     account's id, username, email and role; no session state is created.
//   - POST /time_entries/clock_in, POST /time_entries/clock_out: open and close the
//     caller's work session for the current day. Both take {"user_id"} and return the
//     affected entry; a second clock-in on the same day yields 409 and a clock-out
//     without an open session yields 404.
//   - GET /time_entries?user_id=&start_date=&end_date=: lists a user's entries, newest
//     first, exchanging the `timeEntryDTO` payload defined in time_entry_handler.go.
//   - GET /reports/annual_hours/{user_id}/{year}: aggregates completed sessions into
//     a twelve month breakdown plus an annual total.
//   - GET /shifts, POST /shifts: shift schedule endpoints exchanging the `shiftDTO`
//     payload defined in shift_handler.go.
//   - GET /vacation_requests, POST /vacation_requests and GET /overtime_entries,
//     POST /overtime_entries: request submission and listing; records are stored with
//     a pending status and no approval workflow runs on them.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
