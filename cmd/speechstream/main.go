package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/engine"
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/messages"
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/transport"
	"github.com/bidisha-c/cognitive-services-speech-sdk/internal/config"
	"github.com/spf13/cobra"
	"github.com/youpy/go-wav"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "speechstream",
	Short: "Stream audio to a speech translation service",
}

func init() {
	rootCmd.AddCommand(translateCmd())
}

func translateCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "translate <file.wav>",
		Short: "Translate a WAV file through one streaming turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return translate(cmd.Context(), cfg, args[0])
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "speechstream.toml", "path to config file")
	return cmd
}

func translate(ctx context.Context, cfg *config.Config, wavPath string) error {
	header := http.Header{}
	if cfg.Service.SubscriptionKey != "" {
		header.Set("Ocp-Apim-Subscription-Key", cfg.Service.SubscriptionKey)
	}

	eng := engine.New(
		engine.WithDialer(transport.DialWebSocket(cfg.Service.Endpoint, header)),
		engine.WithMaxAudioFrameSize(cfg.Audio.MaxFrameSize),
		engine.WithEventBuffer(cfg.Audio.EventBufferSize),
		engine.WithRetryPolicy(engine.RetryPolicy{
			MaxRetries:     cfg.Retry.MaxRetries,
			InitialBackoff: cfg.Retry.InitialBackoff(),
			MaxBackoff:     cfg.Retry.MaxBackoff(),
			Multiplier:     2,
		}),
	)
	if err := eng.Open(ctx); err != nil {
		return err
	}
	defer eng.Close()

	handle, err := eng.StartTurn(ctx, engine.TurnConfig{
		SourceLanguage:  cfg.Service.SourceLanguage,
		TargetLanguages: cfg.Service.TargetLanguages,
		Voice:           cfg.Service.Voice,
	})
	if err != nil {
		return err
	}

	pushErr := make(chan error, 1)
	go func() { pushErr <- pushWav(eng, wavPath) }()

	for {
		event, err := eng.NextEvent(ctx)
		if err != nil {
			return err
		}
		if done := printEvent(event); done {
			break
		}
	}

	if err := <-pushErr; err != nil {
		eng.CancelTurn(handle)
		return err
	}
	return nil
}

func pushWav(eng *engine.Engine, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	reader := wav.NewReader(file)
	if _, err := reader.Format(); err != nil {
		return fmt.Errorf("failed to read WAV header: %w", err)
	}

	buf := make([]byte, 4096)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			if pushErr := eng.PushAudio(buf[:n]); pushErr != nil {
				return pushErr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read WAV data: %w", err)
		}
	}
	return eng.EndAudio()
}

// printEvent reports one event and returns true on a terminal one.
func printEvent(event engine.TurnEvent) bool {
	switch m := event.(type) {
	case messages.TurnStart:
		fmt.Printf("turn started (tag %s)\n", m.Tag)
	case messages.SpeechHypothesis:
		fmt.Printf("  ... %s\n", m.Text)
	case messages.SpeechFragment:
		fmt.Printf("  ... %s\n", m.Text)
	case messages.SpeechPhrase:
		fmt.Printf("recognized [%s]: %s\n", m.Status, m.DisplayText)
	case messages.TranslationHypothesis:
		for lang, text := range m.Translation.Translations {
			fmt.Printf("  ... (%s) %s\n", lang, text)
		}
	case messages.TranslationPhrase:
		for lang, text := range m.Translation.Translations {
			fmt.Printf("translated (%s): %s\n", lang, text)
		}
	case messages.AudioOutputChunk:
		fmt.Printf("audio output: stream %d, %d bytes\n", m.StreamID, len(m.Data))
	case messages.UserMessage:
		fmt.Printf("service message on %s (%d bytes)\n", m.Path, len(m.Body))
	case messages.TurnEnd:
		fmt.Println("turn complete")
		return true
	case engine.TurnAborted:
		fmt.Printf("turn aborted: %v\n", m.Reason)
		return true
	}
	return false
}
