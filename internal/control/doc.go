// Package control maps key presses onto simulation engine transitions.
//
// Drivers translate their native key events into the normalized names
// used here ("1", "q", "backspace", "esc", ...) and hand the resulting
// [Command] to [Apply]:
//
//	if cmd, ok := control.Lookup(msg.String()); ok {
//	    res := control.Apply(engine, cmd)
//	    if res.Quit { ... }
//	}
//
// Commands that only concern the driver, such as help, pause and quit,
// pass through Apply untouched and are reported back in the [Result].
package control
