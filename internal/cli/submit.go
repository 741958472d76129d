package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/okian/scorecard/internal/adapters/http/api"
	"github.com/okian/scorecard/internal/domain/model"
	"github.com/okian/scorecard/internal/domain/types"
	"github.com/okian/scorecard/pkg/logger"
	"github.com/spf13/cobra"
)

const defaultTimeout = 30 * time.Second

type submitOptions struct {
	baseURL string
	variant string
	format  string
	in      string
	out     string
	timeout time.Duration
}

func newSubmitCommand() *cobra.Command {
	var opts submitOptions
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Fill a running server's form from a record file and download the export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := runSubmit(cmd.Context(), cmd.OutOrStdout(), opts)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.baseURL, "url", "http://localhost:8501", "base URL of the service")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "form variant (default: the file's, else scorecard)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pdf", "export format: csv, pdf or xlsx")
	cmd.Flags().StringVarP(&opts.in, "in", "i", "", "record YAML file")
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "output directory")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "HTTP request timeout")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// formClient drives one form session; the cookie jar carries the session id.
type formClient struct {
	base   string
	client *http.Client
}

func newFormClient(base string, timeout time.Duration) (*formClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &formClient{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// addEmployee posts one name to the session's list.
func (c *formClient) addEmployee(ctx context.Context, v model.Variant, name string) (types.EmployeeResponse, error) {
	body, err := json.Marshal(types.EmployeeRequest{Name: name})
	if err != nil {
		return types.EmployeeResponse{}, err
	}
	u := c.base + "/api/forms/" + url.PathEscape(v.Slug) + "/employees"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return types.EmployeeResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return types.EmployeeResponse{}, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return types.EmployeeResponse{}, remoteError(resp)
	}

	var out types.EmployeeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.EmployeeResponse{}, fmt.Errorf("%w: decode employees: %w", ErrRemote, err)
	}
	return out, nil
}

// export posts the form values and returns the attachment name and bytes.
func (c *formClient) export(ctx context.Context, v model.Variant, format string, values types.FormValues) (string, []byte, error) {
	u := c.base + "/forms/" + url.PathEscape(v.Slug) + "/export?format=" + url.QueryEscape(format)
	form := api.EncodeForm(v, values)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, remoteError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("%w: read export: %w", ErrRemote, err)
	}
	name := v.FileName(strings.ToLower(format))
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return name, data, nil
}

func remoteError(resp *http.Response) error {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Code == "" {
		return fmt.Errorf("%w: %s", ErrRemote, resp.Status)
	}
	return fmt.Errorf("%w: %s: %s: %s", ErrRemote, resp.Status, body.Code, body.Message)
}

// runSubmit replays a record file against a running server.
func runSubmit(ctx context.Context, w io.Writer, opts submitOptions) (string, error) {
	rf, err := LoadRecordFile(opts.in)
	if err != nil {
		return "", err
	}
	v, err := resolveVariant(opts.variant, rf)
	if err != nil {
		return "", err
	}
	c, err := newFormClient(opts.baseURL, opts.timeout)
	if err != nil {
		return "", err
	}

	log := logger.Named("cli")
	for _, name := range rf.EmployeeNames {
		res, err := c.addEmployee(ctx, v, name)
		if err != nil {
			return "", err
		}
		log.Debug(ctx, "employee submitted",
			logger.String("name", name),
			logger.Bool("added", res.Added),
			logger.Int("count", len(res.EmployeeNames)),
		)
	}

	name, data, err := c.export(ctx, v, opts.format, rf.FormValues)
	if err != nil {
		return "", err
	}
	path, err := writeArtifact(opts.out, name, data)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(w, path)
	return path, nil
}
