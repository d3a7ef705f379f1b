package history

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	commitLineFieldSeparatorConstant = ","
	commitLineFieldCountConstant     = 3
	utcDesignatorConstant            = "Z"
	utcOffsetConstant                = "+00:00"
	gitISOTimestampLayoutConstant    = "2006-01-02 15:04:05 -0700"
	isoColonOffsetLayoutConstant     = "2006-01-02 15:04:05-07:00"
	isoNaiveLayoutConstant           = "2006-01-02 15:04:05"
	malformedLineTemplateConstant    = "commit line %q has %d fields, expected %d"
	unparseableTimestampTemplate     = "unparseable timestamp %q"
)

var (
	// ErrMalformedCommitLine indicates a log line without three comma-separated fields.
	ErrMalformedCommitLine = errors.New("malformed commit line")
	// ErrUnparseableTimestamp indicates a log line whose first field is not a timestamp.
	ErrUnparseableTimestamp = errors.New("unparseable commit timestamp")

	timestampLayouts = []string{
		gitISOTimestampLayoutConstant,
		isoColonOffsetLayoutConstant,
		time.RFC3339Nano,
		isoNaiveLayoutConstant,
	}
)

// ParsedCommitLine holds the fields of one "timestamp,author,subject" line.
type ParsedCommitLine struct {
	Timestamp time.Time
	Author    string
	Subject   string
}

// ParseCommitLine splits a line into at most three fields on the first two commas.
// Commas inside the subject are preserved; commas inside the author shift the fields.
func ParseCommitLine(line string) (ParsedCommitLine, error) {
	fields := strings.SplitN(line, commitLineFieldSeparatorConstant, commitLineFieldCountConstant)
	if len(fields) != commitLineFieldCountConstant {
		return ParsedCommitLine{}, fmt.Errorf("%w: "+malformedLineTemplateConstant, ErrMalformedCommitLine, line, len(fields), commitLineFieldCountConstant)
	}
	timestamp, timestampError := ParseTimestamp(fields[0])
	if timestampError != nil {
		return ParsedCommitLine{}, timestampError
	}
	return ParsedCommitLine{Timestamp: timestamp, Author: fields[1], Subject: fields[2]}, nil
}

// ParseTimestamp reads an ISO-8601 timestamp, treating a trailing Z as +00:00.
// Timestamps without an offset are interpreted as UTC.
func ParseTimestamp(rawTimestamp string) (time.Time, error) {
	normalizedTimestamp := strings.TrimSpace(rawTimestamp)
	if strings.HasSuffix(normalizedTimestamp, utcDesignatorConstant) {
		normalizedTimestamp = strings.TrimSuffix(normalizedTimestamp, utcDesignatorConstant) + utcOffsetConstant
	}
	for _, layout := range timestampLayouts {
		parsedTimestamp, parseError := time.Parse(layout, normalizedTimestamp)
		if parseError == nil {
			return parsedTimestamp, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: "+unparseableTimestampTemplate, ErrUnparseableTimestamp, rawTimestamp)
}
