/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package extractor

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func responseWithDate(date string) *http.Response {
	h := http.Header{}
	if date != "" {
		h.Set("Date", date)
	}
	return &http.Response{Header: h}
}

func TestDateHeaderExtractorName(t *testing.T) {
	require.Equal(t, "date-header", DateHeaderExtractor{}.Name())
}

func TestExtractValidDateHeader(t *testing.T) {
	resp := responseWithDate("Wed, 21 Oct 2015 07:28:00 GMT")
	ts, err := DateHeaderExtractor{}.Extract(resp)
	require.NoError(t, err)
	require.Equal(t, int64(1_445_412_480), ts)
}

func TestExtractMissingDateHeader(t *testing.T) {
	resp := responseWithDate("")
	_, err := DateHeaderExtractor{}.Extract(resp)
	require.ErrorIs(t, err, ErrNoDateHeader)
}

func TestExtractInvalidDateHeader(t *testing.T) {
	resp := responseWithDate("not-a-real-date")
	_, err := DateHeaderExtractor{}.Extract(resp)
	var invalid *InvalidDateHeaderError
	require.True(t, errors.As(err, &invalid), "expected InvalidDateHeaderError, got %T: %v", err, err)
	require.Equal(t, "not-a-real-date", invalid.Raw)
}
