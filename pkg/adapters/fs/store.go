package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/projtree/pkg/core"
	"github.com/aretw0/projtree/pkg/git"
	"github.com/aretw0/projtree/pkg/project"
)

const (
	// DefaultProjectFile is the project file name used when none is configured.
	DefaultProjectFile = "project.yaml"
	// DefaultSystemDir holds the lock and clipboard files.
	DefaultSystemDir = ".projtree"

	defaultCommitMessage = "chore: update project"
)

// ErrUnsupportedFormat is returned when no serializer handles the project file extension.
var ErrUnsupportedFormat = errors.New("unsupported project file format")

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	ProjectFile  string // e.g. "project.yaml"
	AutoInit     bool
	Gitless      bool
	MustExist    bool
	ReadOnly     bool
	Strict       bool
	SystemDir    string // e.g. ".projtree"
	Logger       *slog.Logger
	ErrorHandler func(error)
}

// Store persists a project as a single file, optionally versioned with Git.
type Store struct {
	Path   string
	git    *git.Client
	config Config

	mu            sync.RWMutex
	serializers   map[string]Serializer
	lastDigest    string
	lastSaved     *time.Time
	watcherActive bool
	watcher       *watchWorker
}

// NewStore creates a filesystem-backed project store.
func NewStore(config Config) *Store {
	if config.ProjectFile == "" {
		config.ProjectFile = DefaultProjectFile
	}
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Store{
		Path:        config.Path,
		git:         git.NewClient(config.Path, filepath.Join(config.SystemDir, git.DefaultLockName), config.Logger),
		config:      config,
		serializers: DefaultSerializers(config.Strict),
	}
}

// RegisterSerializer adds or replaces the serializer for ext (e.g. ".toml").
func (s *Store) RegisterSerializer(ext string, serializer Serializer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serializers[strings.ToLower(ext)] = serializer
}

// FilePath returns the absolute path of the project file.
func (s *Store) FilePath() string {
	return filepath.Join(s.Path, s.config.ProjectFile)
}

// SystemPath returns the absolute path of the system directory.
func (s *Store) SystemPath() string {
	return filepath.Join(s.Path, s.config.SystemDir)
}

// Exists reports whether the project file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.FilePath())
	return err == nil
}

// Initialize performs the necessary setup for the store (mkdir, git init).
func (s *Store) Initialize(ctx context.Context) error {
	// 1. Directory
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("project path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("project path is not a directory: %s", s.Path)
		}
	} else if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	if s.config.Gitless || s.config.ReadOnly {
		return nil
	}

	// 2. Git
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !git.IsRepo(s.Path) {
		if !s.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", s.Path)
		}
		if err := s.git.Init(ctx); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	mod, err := s.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}
	if mod && wasNewRepo {
		if err := s.git.Add(ctx, ".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		if err := s.git.Commit(ctx, fmt.Sprintf("chore: configure %s ignore", s.config.SystemDir)); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}
	return nil
}

func (s *Store) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(s.Path, ".gitignore")
	ignoreEntry := s.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(ignoreEntry + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) serializer() (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(s.config.ProjectFile))
	s.mu.RLock()
	defer s.mu.RUnlock()
	ser, ok := s.serializers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return ser, nil
}

// Load reads the project file. A missing file yields core.ErrNotFound.
func (s *Store) Load(ctx context.Context, opts ...project.Option) (*project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ser, err := s.serializer()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.FilePath())
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, s.FilePath())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	f, err := ser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.config.ProjectFile, err)
	}
	p, err := project.FromFile(*f, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", s.config.ProjectFile, err)
	}

	s.mu.Lock()
	s.lastDigest = digest(data)
	s.mu.Unlock()

	if s.config.Logger != nil {
		s.config.Logger.Debug("project loaded", "path", s.FilePath(), "name", p.Name())
	}
	return p, nil
}

// Save writes the project file atomically and, unless gitless, commits it.
// The commit message is read from ctx under core.ChangeReasonKey.
func (s *Store) Save(ctx context.Context, p *project.Project) error {
	if s.config.ReadOnly {
		return fmt.Errorf("%w: cannot save %s", core.ErrReadOnly, s.config.ProjectFile)
	}
	ser, err := s.serializer()
	if err != nil {
		return err
	}
	data, err := ser.Serialize(p.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to serialize project: %w", err)
	}

	var unlock func()
	if !s.config.Gitless {
		unlock, err = s.git.Lock(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire git lock: %w", err)
		}
		defer unlock()
	}

	sum, err := writeAtomic(s.FilePath(), data, 0644)
	if err != nil {
		return err
	}
	now := time.Now()
	s.mu.Lock()
	s.lastDigest = sum
	s.lastSaved = &now
	s.mu.Unlock()

	if s.config.Logger != nil {
		s.config.Logger.Debug("project saved", "path", s.FilePath(), "bytes", len(data))
	}

	if s.config.Gitless {
		return nil
	}
	return s.commit(ctx)
}

func (s *Store) commit(ctx context.Context) error {
	file := s.config.ProjectFile
	status, err := s.git.Status(ctx, file)
	if err != nil {
		return err
	}
	if status == "" {
		return nil
	}
	if err := s.git.Add(ctx, file); err != nil {
		return err
	}

	msg := defaultCommitMessage
	if reason, ok := ctx.Value(core.ChangeReasonKey).(string); ok && reason != "" {
		msg = reason
	}
	if err := s.git.Commit(ctx, msg); err != nil {
		return fmt.Errorf("failed to commit %s: %w", file, err)
	}
	return nil
}

// History returns the last n commit messages touching the repository.
func (s *Store) History(ctx context.Context, n int) ([]string, error) {
	if s.config.Gitless {
		return nil, fmt.Errorf("history unavailable in gitless mode")
	}
	return s.git.Log(ctx, n)
}

// ownWrite reports whether data is what the store last read or wrote.
func (s *Store) ownWrite(data []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastDigest != "" && s.lastDigest == digest(data)
}

func (s *Store) rememberDigest(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDigest = digest(data)
}
