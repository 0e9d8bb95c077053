package presenter

import "github.com/soocke/facelog-go/domain/screen"

// ButtonState describes one control-bar button. An empty Label hides it.
type ButtonState struct {
	Label   string
	Enabled bool
}

// Controls is the full control-bar view model for one screen state.
type Controls struct {
	Message string
	Close   ButtonState
	Flash   ButtonState
	Facing  ButtonState
	Capture ButtonState
	Grid    ButtonState
	Undo    ButtonState
	Accept  ButtonState
	Guides  bool
}

const noPermissionMessage = "No access to camera"

// ControlsFor maps a screen state to its control bar.
func ControlsFor(st screen.State) Controls {
	on := func(label string) ButtonState { return ButtonState{Label: label, Enabled: true} }
	closeBtn := on("close")
	switch st.UI {
	case screen.StateNoPermission:
		return Controls{Message: noPermissionMessage, Close: closeBtn}
	case screen.StateCapturePhoto:
		cs := st.CameraSettings
		c := Controls{
			Close:   closeBtn,
			Flash:   on(cs.FlashMode.Icon()),
			Facing:  on("rotate-3d"),
			Capture: on("camera"),
			Grid:    on("grid-off"),
			Guides:  cs.ShowGrid,
		}
		if cs.ShowGrid {
			c.Grid = on("grid")
		}
		if st.CapturingPhoto {
			c.Capture = ButtonState{Label: "spinner"}
		}
		return c
	case screen.StateReviewPhoto:
		if st.Preview == nil {
			return Controls{}
		}
		c := Controls{Close: closeBtn, Undo: on("undo"), Accept: on("check-circle")}
		if st.SavingPhoto {
			c.Undo.Enabled = false
			c.Accept.Enabled = false
		}
		return c
	default:
		// Asking for permission: empty bar.
		return Controls{}
	}
}
