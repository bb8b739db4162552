// Package lib provides a Go SDK to embed the planboard scheduling core in
// other applications, like a board UI.
//
// The client lays out project boards, counts business days, manages the view
// settings and runs editing sessions where tasks are rescheduled by dragging
// their bars. Rendering is up to the caller: boards are plain values with the
// proportional geometry already computed.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Load a board file and show it.
//	imp, err := client.Import(ctx, "/path/to/board.yaml")
//	board, err := client.Board(ctx, imp.ProjectID, nil)
//
// # Editing sessions
//
// A [Session] keeps the changes of the user pending until they are saved,
// pointer events of the rendering surface are forwarded to it:
//
//	s, err := client.NewSession(ctx, "my-project", nil)
//	s.PointerDown(ctx, "task-1", 620)
//	s.PointerMove(700)   // s.Board(ctx) shows the live preview.
//	s.PointerUp()        // The new dates are pending.
//	res, err := s.Save(ctx)
//
// A press that never moves past the drag threshold is a click, the
// [SessionOpts.OnClick] callback receives the task so the UI can open its editor.
//
// # Storage
//
// By default data is stored in a SQLite database at ~/.planboard/planboard.db.
// Set [Config.InMemory] for a throwaway store, useful in tests.
//
// # Holidays
//
// Business days skip weekends and the holidays of the project region. Holidays
// come from the imported board files, with [Config.GoogleAPIKey] the public
// holiday calendars of Google are also used and cached in the store.
//
// # Errors
//
// Errors can be checked with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Resource already exists.
//   - [ErrNotValid]: Invalid input.
//   - [ErrNoGeometry]: The project has no task with valid dates to lay out.
//   - [ErrDragActive]: A drag started while another one was in progress.
package lib
