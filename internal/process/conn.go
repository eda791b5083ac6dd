// Package process drives a long-running exiftool in -stay_open mode.
//
// Arguments are written to the process one per line on stdin. Each command
// is terminated with -executeN, after which exiftool prints {readyN} on
// stdout. An -echo4 marker is appended so the command's stderr can be
// delimited the same way.
package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/exifmeta/internal/types"
)

// Result holds the output of one command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// Conn is a running exiftool process. Commands are serialised.
type Conn struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	stderr *bufio.Reader
	seq    int
	closed bool
	logger *zap.Logger
}

// Start launches binary with leading args followed by the stay_open flags.
func Start(binary string, leading []string, logger *zap.Logger) (*Conn, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	args := append(slices.Clone(leading), "-stay_open", "True", "-@", "-")
	cmd := exec.Command(binary, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}
	logger.Info("exiftool started", zap.String("binary", binary), zap.Int("pid", cmd.Process.Pid))

	return &Conn{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		stderr: bufio.NewReader(stderr),
		logger: logger,
	}, nil
}

// Run sends one command and waits for its output.
//
// If ctx is cancelled while the command runs, the process is killed: the
// output stream can no longer be resynchronised, so the Conn is closed and
// later calls return types.ErrClosed.
func (c *Conn) Run(ctx context.Context, args []string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Result{}, types.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var req bytes.Buffer
	for _, arg := range args {
		if strings.ContainsAny(arg, "\r\n") {
			return Result{}, fmt.Errorf("argument %q contains a line break", arg)
		}
		req.WriteString(arg)
		req.WriteByte('\n')
	}

	c.seq++
	readyMarker := fmt.Sprintf("{ready%d}", c.seq)
	stderrMarker := fmt.Sprintf("{stderr%d}", c.seq)
	fmt.Fprintf(&req, "-echo4\n%s\n-execute%d\n", stderrMarker, c.seq)

	c.logger.Debug("exiftool command", zap.Int("seq", c.seq), zap.Strings("args", args))

	stop := context.AfterFunc(ctx, c.kill)
	defer stop()

	if _, err := c.stdin.Write(req.Bytes()); err != nil {
		c.abort()
		return Result{}, fmt.Errorf("write command: %w", err)
	}

	var res Result
	var g errgroup.Group
	g.Go(func() error {
		out, err := readUntil(c.stdout, readyMarker)
		res.Stdout = out
		return err
	})
	g.Go(func() error {
		out, err := readUntil(c.stderr, stderrMarker)
		res.Stderr = out
		return err
	})
	err := g.Wait()

	if !stop() {
		// The context fired and killed the process.
		c.abort()
		return Result{}, ctx.Err()
	}
	if err != nil {
		c.abort()
		return Result{}, fmt.Errorf("read output: %w", err)
	}
	return res, nil
}

// Close asks exiftool to exit and waits for it. Close is idempotent.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if _, err := io.WriteString(c.stdin, "-stay_open\nFalse\n"); err != nil {
		c.kill()
		c.cmd.Wait()
		return fmt.Errorf("stop exiftool: %w", err)
	}
	c.stdin.Close()

	if err := c.cmd.Wait(); err != nil {
		return fmt.Errorf("wait exiftool: %w", err)
	}
	c.logger.Info("exiftool stopped", zap.Int("pid", c.cmd.Process.Pid))
	return nil
}

// Closed reports whether the process has been closed or killed.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Conn) kill() {
	if c.cmd.Process != nil {
		c.cmd.Process.Kill()
	}
}

// abort kills and reaps the process. c.mu must be held.
func (c *Conn) abort() {
	c.closed = true
	c.kill()
	c.stdin.Close()
	c.cmd.Wait()
	c.logger.Warn("exiftool killed", zap.Int("pid", c.cmd.Process.Pid))
}

// readUntil reads lines until one ends with marker and returns everything
// before it.
func readUntil(r *bufio.Reader, marker string) ([]byte, error) {
	var out bytes.Buffer
	for {
		line, err := r.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.HasSuffix(trimmed, marker) {
			out.WriteString(strings.TrimSuffix(trimmed, marker))
			return out.Bytes(), nil
		}
		out.WriteString(line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out.Bytes(), fmt.Errorf("exiftool exited before %s: %w", marker, io.ErrUnexpectedEOF)
			}
			return out.Bytes(), err
		}
	}
}
