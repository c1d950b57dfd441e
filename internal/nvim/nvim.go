package nvim

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/neovim/go-client/nvim"
)

// Manager handles the connection and interaction with a Neovim instance.
type Manager struct {
	nvim          *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
}

// New creates a new Neovim manager, connecting to an existing instance
// or starting a new headless one.
func New() (*Manager, error) {
	// Try to connect to a running instance first.
	if addr := os.Getenv("NVIM_LISTEN_ADDRESS"); addr != "" {
		v, err := nvim.Dial(addr)
		if err == nil {
			log.Debugf("connected to running nvim at %s", addr)
			return &Manager{nvim: v}, nil
		}
		log.Debugf("could not dial nvim at %s: %v", addr, err)
	}

	// If that fails, start a temporary headless instance.
	tmpDir, err := os.MkdirTemp("", "reconcile-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to start headless nvim: %w. Is 'nvim' in your PATH?", err)
	}

	// Wait for the socket file to appear.
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to connect to headless nvim: %w", err)
	}

	log.Debugf("started headless nvim on %s", socketPath)
	m := &Manager{
		nvim:          v,
		isSelfStarted: true,
		cmd:           cmd,
		socketPath:    socketPath,
	}
	m.configureTempInstance()
	return m, nil
}

// configureTempInstance keeps the headless instance from leaving swap files behind.
func (m *Manager) configureTempInstance() {
	if err := m.nvim.Command("set noswapfile"); err != nil {
		log.Debugf("could not configure headless nvim: %v", err)
	}
}

// Close disconnects from Neovim and cleans up if it was self-started.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
	if m.isSelfStarted && m.cmd != nil && m.cmd.Process != nil {
		if err := m.cmd.Process.Kill(); err == nil {
			m.cmd.Wait()
			os.RemoveAll(filepath.Dir(m.socketPath))
		}
	}
}

// ShowText loads text into a buffer. With an empty path the text goes into a
// new scratch buffer; otherwise the buffer for path is opened and replaced.
func (m *Manager) ShowText(path, text string) error {
	b := m.nvim.NewBatch()
	if path == "" {
		b.Command("enew")
	} else {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", path, err)
		}
		b.Command(fmt.Sprintf("edit! %s", absPath))
	}
	b.SetBufferLines(0, 0, -1, true, Lines(text))

	if err := b.Execute(); err != nil {
		return fmt.Errorf("failed to update nvim buffer: %w", err)
	}
	return nil
}

// SaveAllBuffers writes all modified buffers to disk.
func (m *Manager) SaveAllBuffers() error {
	if err := m.nvim.Command("wa!"); err != nil {
		return fmt.Errorf("failed to save nvim buffers: %w", err)
	}
	return nil
}

// Lines splits text into buffer lines. A trailing newline does not produce an
// extra empty line, since Neovim adds it back on write.
func Lines(text string) [][]byte {
	parts := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	lines := make([][]byte, len(parts))
	for i, s := range parts {
		lines[i] = []byte(s)
	}
	return lines
}
