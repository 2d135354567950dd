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

// Package voikko runs voikkospell in morphological analysis mode (-M).
//
// Two variants share the implementation:
//   - binary: the voikkospell executable bundled in BinaryDir, run with
//     its bundled dictionary (-p BinaryDir/dictionary). Its permission
//     bits are repaired to 0755 before every run.
//   - command_line: a voikkospell command found on PATH.
//
// All tokens of a batch are written to standard input, one per line, in a
// single process run. The process environment carries a UTF-8 locale in
// LANG and LC_ALL; anything written to standard error fails the batch.
package voikko
