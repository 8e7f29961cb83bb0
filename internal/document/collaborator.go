// Package document manages the open maps and copies the chosen one in and out
// of the shared editing context.
package document

// Decision is the answer to a save prompt.
type Decision int

const (
	Yes Decision = iota
	No
	Cancel
)

// Collaborator is everything a map set needs from its surroundings.
type Collaborator interface {
	ReadText(path string) (string, error)
	WriteText(path, text string) error
	FileExists(path string) bool

	PromptSaveDecision(name string) Decision
	// PromptSavePath asks where to save. ok is false when the user gave up.
	PromptSavePath(suggested string) (path string, ok bool)

	// LoadAudio prepares the audio for id and returns its length in ms
	LoadAudio(id string) (int64, error)

	NotifyToast(msg string)
	ShowError(msg string)
}
