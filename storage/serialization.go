// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
	"github.com/mus-format/mus-go/ord"
)

var stringsMUS = ord.NewSliceSer[string](ord.String)

// AnalysisMUS serializes the cacheable part of a core.Analysis: base forms
// followed by compound annotations.
var AnalysisMUS = analysisMUS{}

type analysisMUS struct{}

func (analysisMUS) Marshal(a core.Analysis, bs []byte) (n int) {
	n = stringsMUS.Marshal(a.BaseForms, bs)
	return n + stringsMUS.Marshal(a.CompoundAnnotations, bs[n:])
}

func (analysisMUS) Unmarshal(bs []byte) (a core.Analysis, n int, err error) {
	a.BaseForms, n, err = stringsMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	a.CompoundAnnotations, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (analysisMUS) Size(a core.Analysis) (size int) {
	return stringsMUS.Size(a.BaseForms) + stringsMUS.Size(a.CompoundAnnotations)
}

func (analysisMUS) Skip(bs []byte) (n int, err error) {
	n, err = stringsMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err := stringsMUS.Skip(bs[n:])
	n += n1
	return
}

// MarshalAnalysis serializes an Analysis to bytes. Failures are dropped.
func MarshalAnalysis(analysis *core.Analysis) []byte {
	v := core.Analysis{
		BaseForms:           analysis.BaseForms,
		CompoundAnnotations: analysis.CompoundAnnotations,
	}
	buf := make([]byte, AnalysisMUS.Size(v))
	AnalysisMUS.Marshal(v, buf)
	return buf
}

// UnmarshalAnalysis deserializes an Analysis from bytes.
func UnmarshalAnalysis(data []byte) (*core.Analysis, error) {
	analysis, _, err := AnalysisMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &analysis, nil
}
