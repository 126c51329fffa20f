package ai

// Chat roles understood by the completion service.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat-style completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a single chat completion call.
type CompletionRequest struct {
	// Model selects the hosted model. Stages pick different models: a larger
	// one for generation quality, a smaller one for routing and translation.
	Model string

	// Messages is the ordered chat transcript, system instruction first.
	Messages []Message

	// JSONResponse requests a structured-JSON completion instead of free text.
	JSONResponse bool
}

// TranscriptionRequest describes a single speech-to-text call.
type TranscriptionRequest struct {
	// Filename is kept so the decoder can read the container format from the
	// extension (.webm/.mp4); the audio itself travels in Data.
	Filename string
	Data     []byte

	Model    string
	Language string

	// Prompt biases the recognizer toward the expected language, improving
	// accuracy on short clips.
	Prompt string
}

// GenerationError marks a completion-service failure with no safe default:
// unparseable model output or exhausted retries. It is fatal for the request;
// callers must never substitute a default result for it.
type GenerationError struct {
	// Stage names the pipeline step that failed ("routing", "generation",
	// "translation", "transcription").
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return "generation failed at " + e.Stage + " stage: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }
