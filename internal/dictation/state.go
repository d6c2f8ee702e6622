// Package dictation содержит оркестратор цикла диктовки: конечный
// автомат состояний, ветвление команда/диктовка и деградацию при
// отказах движков.
package dictation

// State - состояние цикла диктовки. Единственный экземпляр живёт в
// контроллере, меняется только им; наружу отдаётся только для чтения.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateTranscribing
	StateProcessing
	StateInjecting
	StateError
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateTranscribing:
		return "transcribing"
	case StateProcessing:
		return "processing"
	case StateInjecting:
		return "injecting"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Причины переходов для объявления наблюдателям.
const (
	ReasonHotkeyDown       = "hotkey_down"
	ReasonHotkeyUp         = "hotkey_up"
	ReasonSilentInput      = "silent_input"
	ReasonEmptyTranscript  = "empty_transcript"
	ReasonTranscribeFailed = "transcribe_failed"
	ReasonCommandExecuted  = "command_executed"
	ReasonCommandPartial   = "command_partial"
	ReasonProcessed        = "processed"
	ReasonInjected         = "injected"
	ReasonInjectFailed     = "inject_failed"
	ReasonRecordFailed     = "record_failed"
)
