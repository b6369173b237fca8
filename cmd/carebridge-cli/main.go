// carebridge-cli is a small terminal client for a running carebridge
// daemon. It is the quickest way to exercise the conversation pipeline
// without the web UI.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	userType  string
	noAudio   bool
	saveAudio string
	version   = "dev"
)

var (
	replyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	intentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	suggestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var rootCmd = &cobra.Command{
	Use:     "carebridge-cli",
	Short:   "Talk to a running carebridge daemon",
	Version: version,
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message through the conversation pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := args[0]

		body, err := json.Marshal(map[string]any{
			"message":       message,
			"userType":      userType,
			"generateAudio": !noAudio && saveAudio != "",
		})
		if err != nil {
			return err
		}

		client := &http.Client{Timeout: 60 * time.Second}
		resp, err := client.Post(serverURL+"/conversation", "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("reaching carebridge at %s: %w", serverURL, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("server returned %d: %s", resp.StatusCode, respBody)))
			os.Exit(1)
		}

		var result struct {
			Response    string   `json:"response"`
			Intent      string   `json:"intent"`
			Suggestions []string `json:"suggestions"`
			Audio       *struct {
				Audio    string `json:"audio"`
				MimeType string `json:"mimeType"`
			} `json:"audio"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		fmt.Println(intentStyle.Render("[" + result.Intent + "]"))
		fmt.Println(replyStyle.Render(result.Response))
		if len(result.Suggestions) > 0 {
			fmt.Println()
			for _, s := range result.Suggestions {
				fmt.Println(suggestStyle.Render("  → " + s))
			}
		}

		if saveAudio != "" && result.Audio != nil {
			audio, err := base64.StdEncoding.DecodeString(result.Audio.Audio)
			if err != nil {
				return fmt.Errorf("decoding audio: %w", err)
			}
			if err := os.WriteFile(saveAudio, audio, 0o644); err != nil {
				return fmt.Errorf("writing audio file: %w", err)
			}
			fmt.Printf("\nsaved %d bytes of %s to %s\n", len(audio), result.Audio.MimeType, saveAudio)
		}
		return nil
	},
}

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions [intent]",
	Short: "Show the follow-up prompts for an intent",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		intent := "general_inquiry"
		if len(args) > 0 {
			intent = args[0]
		}

		q := url.Values{"userType": {userType}, "intent": {intent}}
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(serverURL + "/conversation/suggestions?" + q.Encode())
		if err != nil {
			return fmt.Errorf("reaching carebridge at %s: %w", serverURL, err)
		}
		defer resp.Body.Close()

		var result struct {
			Suggestions []string `json:"suggestions"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		for _, s := range result.Suggestions {
			fmt.Println(suggestStyle.Render("  → " + s))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "carebridge base URL")
	rootCmd.PersistentFlags().StringVar(&userType, "user-type", "caregiver", "session user type (elder, caregiver, support)")
	askCmd.Flags().BoolVar(&noAudio, "no-audio", false, "skip voice synthesis")
	askCmd.Flags().StringVar(&saveAudio, "save-audio", "", "write the voiced reply to this mp3 file")
	rootCmd.AddCommand(askCmd, suggestionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
