// atscheck scores a resume against a job description offline, without the
// model server: useful for tuning a resume against a posting from the
// terminal.
//
//	atscheck -resume cv.pdf -job posting.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cvtailor-backend/internal/ats"
	"cvtailor-backend/internal/extract"
)

func main() {
	resumePath := flag.String("resume", "", "resume file (pdf, docx, or plain text)")
	jobPath := flag.String("job", "", "job description text file")
	flag.Parse()

	if *resumePath == "" || *jobPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	resumeText, err := readResume(*resumePath)
	if err != nil {
		log.Fatalf("read resume: %v", err)
	}
	jobText, err := os.ReadFile(*jobPath)
	if err != nil {
		log.Fatalf("read job description: %v", err)
	}

	result := ats.Score(resumeText, string(jobText))

	fmt.Printf("ATS score: %d/100\n", result.Score)
	if len(result.Matched) > 0 {
		fmt.Printf("Matched:  %s\n", strings.Join(result.Matched, ", "))
	}
	if len(result.Missing) > 0 {
		fmt.Printf("Missing:  %s\n", strings.Join(result.Missing, ", "))
	}
}

func readResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return extract.TextFromBytes(context.Background(), data, "", filepath.Base(path))
	default:
		return string(data), nil
	}
}
