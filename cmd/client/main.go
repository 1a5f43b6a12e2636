package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"video-annotator/internal/domain/dto"
	"video-annotator/pkg/helper"

	"github.com/gofiber/fiber/v2"
)

const LIMIT = 5

type ImportProgress struct {
	mu          sync.RWMutex
	total       int
	registered  int
	failed      int
	isCancelled bool
	startTime   time.Time
}

func (p *ImportProgress) IncrementRegistered() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered++
}

func (p *ImportProgress) IncrementFailed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed++
}

func (p *ImportProgress) SetCancelled() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isCancelled = true
}

func (p *ImportProgress) IsCancelled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isCancelled
}

func (p *ImportProgress) GetProgress() (registered, failed, total int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registered, p.failed, p.total
}

type client struct {
	base string
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: client [-server URL] <command> [args]

commands:
  import <dir>                  register every video file under dir
  register <uri>                register one video
  videos                        list videos with metadata
  show <uri>                    comments and drawings of a video
  comment <uri> <seconds> <text>
  delete-comment <uri> <id>
  visible <uri> <seconds>       drawings shown at a position
  palette                       pen colors and default stroke width
  delete-video <uri>
  clear <uri>
  stats
  cleanup
`)
}

func main() {
	server := flag.String("server", "http://localhost:3000/api/v1", "Server base URL")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	c := &client{base: strings.TrimRight(*server, "/")}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "import":
		need(rest, 1)
		err = c.importDir(rest[0])
	case "register":
		need(rest, 1)
		err = c.do(fiber.Post(c.base+"/videos").JSON(dto.RegisterVideoRequest{URI: rest[0]}))
	case "videos":
		err = c.do(fiber.Get(c.base + "/videos"))
	case "show":
		need(rest, 1)
		err = c.do(fiber.Get(c.base + "/annotations").QueryString(uriQuery(rest[0])))
	case "comment":
		need(rest, 3)
		seconds, perr := strconv.ParseFloat(rest[1], 64)
		if perr != nil {
			log.Fatalf("invalid seconds %q: %v", rest[1], perr)
		}
		err = c.do(fiber.Post(c.base + "/annotations/comments").JSON(dto.AddCommentRequest{
			URI:       rest[0],
			Text:      strings.Join(rest[2:], " "),
			Timestamp: seconds,
		}))
	case "delete-comment":
		need(rest, 2)
		err = c.do(fiber.Delete(c.base + "/annotations/comments/" + url.PathEscape(rest[1])).QueryString(uriQuery(rest[0])))
	case "visible":
		need(rest, 2)
		err = c.do(fiber.Get(c.base + "/annotations/visible").QueryString(uriQuery(rest[0]) + "&position=" + url.QueryEscape(rest[1])))
	case "palette":
		err = c.do(fiber.Get(c.base + "/annotations/palette"))
	case "delete-video":
		need(rest, 1)
		err = c.do(fiber.Delete(c.base + "/videos").QueryString(uriQuery(rest[0])))
	case "clear":
		need(rest, 1)
		err = c.do(fiber.Delete(c.base + "/annotations").QueryString(uriQuery(rest[0])))
	case "stats":
		err = c.do(fiber.Get(c.base + "/stats"))
	case "cleanup":
		err = c.do(fiber.Post(c.base + "/maintenance/cleanup"))
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func need(args []string, n int) {
	if len(args) < n {
		usage()
		os.Exit(2)
	}
}

func uriQuery(uri string) string {
	return "uri=" + url.QueryEscape(uri)
}

// do sends the request and pretty-prints the JSON response.
func (c *client) do(agent *fiber.Agent) error {
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %v", errs[0])
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		out.Reset()
		out.Write(body)
	}
	fmt.Println(out.String())
	if code >= 400 {
		return fmt.Errorf("server responded %d", code)
	}
	return nil
}

func (c *client) register(uri string) error {
	code, body, errs := fiber.Post(c.base + "/videos").JSON(dto.RegisterVideoRequest{URI: uri}).Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	if code >= 400 {
		var e dto.ErrorResponse
		_ = json.Unmarshal(body, &e)
		return fmt.Errorf("%d %s: %s", code, e.Error, e.Message)
	}
	return nil
}

// importDir registers every video under dir, LIMIT requests at a time.
func (c *client) importDir(dir string) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && helper.IsVideoFile(path) {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			files = append(files, "file://"+filepath.ToSlash(abs))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(files) == 0 {
		fmt.Println("no video files found")
		return nil
	}

	fmt.Printf("Server: %s\n", c.base)
	fmt.Printf("Found %d videos under %s\n", len(files), dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	progress := &ImportProgress{total: len(files), startTime: time.Now()}
	go func() {
		<-sigCh
		fmt.Println("\nCancelling import...")
		progress.SetCancelled()
	}()

	sem := make(chan struct{}, LIMIT)
	var wg sync.WaitGroup
	for _, uri := range files {
		if progress.IsCancelled() {
			break
		}
		wg.Add(1)
		go func(uri string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if progress.IsCancelled() {
				return
			}
			if err := c.register(uri); err != nil {
				log.Printf("\n%s: %v", uri, err)
				progress.IncrementFailed()
				return
			}
			progress.IncrementRegistered()
			registered, failed, total := progress.GetProgress()
			fmt.Printf("\rProgress: %d/%d registered, %d failed", registered, total, failed)
		}(uri)
	}
	wg.Wait()

	registered, failed, total := progress.GetProgress()
	fmt.Printf("\nDone in %s: %d/%d registered, %d failed\n",
		time.Since(progress.startTime).Round(time.Millisecond), registered, total, failed)
	if failed > 0 {
		return fmt.Errorf("%d videos failed to register", failed)
	}
	return nil
}
