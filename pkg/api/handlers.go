package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/james-see/midiscope/pkg/analysis"
	"github.com/james-see/midiscope/pkg/chord"
	"github.com/james-see/midiscope/pkg/crosscheck"
	"github.com/james-see/midiscope/pkg/transcript"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MaxUploadSize is the largest MIDI file accepted by the upload endpoints.
var MaxUploadSize int64 = 8 << 20

// multipart headers and boundaries on top of the file itself
const formOverhead = 64 << 10

// handleAnalyze godoc
// @Summary Analyze a MIDI file
// @Description Upload a Standard MIDI File and receive its notes and chords
// @Tags analyze
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "MIDI file to analyze"
// @Param threshold query number false "Largest chord distance (default: 0.5)"
// @Param window query integer false "Chord window in beats (default: 1)"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/analyze [post]
func handleAnalyze(c *gin.Context) {
	report, ok := analyze(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newAnalyzeResponse(report))
}

// handleTranscript godoc
// @Summary Render a transcript
// @Description Upload a Standard MIDI File and receive a plain text transcript
// @Tags analyze
// @Accept multipart/form-data
// @Produce plain
// @Param file formData file true "MIDI file to render"
// @Param threshold query number false "Largest chord distance (default: 0.5)"
// @Param window query integer false "Chord window in beats (default: 1)"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/transcript [post]
func handleTranscript(c *gin.Context) {
	report, ok := analyze(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := transcript.NewPrinter(&buf).Write(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// handleVerify godoc
// @Summary Cross-check a MIDI file
// @Description Compare our decoding of the upload with gomidi's
// @Tags analyze
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "MIDI file to verify"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/verify [post]
func handleVerify(c *gin.Context) {
	data, ok := readUpload(c)
	if !ok {
		return
	}
	res, err := crosscheck.Verify(data)
	if err != nil {
		unprocessable(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         res.OK(),
		"tracks":     res.Ours.Tracks,
		"mismatches": append([]string{}, res.Mismatches...),
	})
}

// listChords godoc
// @Summary List chord templates
// @Description Returns the chord template library
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]TemplateInfo
// @Router /api/v1/chords [get]
func listChords(c *gin.Context) {
	tpls := chord.Templates()
	out := make([]TemplateInfo, 0, len(tpls))
	for _, t := range tpls {
		out = append(out, newTemplateInfo(t))
	}
	c.JSON(http.StatusOK, gin.H{"chords": out})
}

func analyze(c *gin.Context) (*analysis.Report, bool) {
	opts, err := optionsFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	data, ok := readUpload(c)
	if !ok {
		return nil, false
	}
	report, err := analysis.Analyze(data, opts)
	if err != nil {
		unprocessable(c, err)
		return nil, false
	}
	return report, true
}

func optionsFromQuery(c *gin.Context) (analysis.Options, error) {
	opts := analysis.DefaultOptions()
	if v, ok := c.GetQuery("threshold"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, err
		}
		opts.Threshold = f
	}
	if v, ok := c.GetQuery("window"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, err
		}
		opts.Window = n
	}
	return opts, opts.Validate()
}

func readUpload(c *gin.Context) ([]byte, bool) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+formOverhead)
	}
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return nil, false
	}
	if int64(len(data)) > MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return nil, false
	}
	return data, true
}

func unprocessable(c *gin.Context, err error) {
	log.WithFields(log.Fields{
		"request_id": c.GetString("request_id"),
		"error":      err,
	}).Debug("rejected upload")
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}
