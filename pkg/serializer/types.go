// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package serializer renders run results in machine- and human-readable
// formats.
//
// The package supports three output formats:
//   - JSON: Machine-readable structured data with proper indentation
//   - YAML: Human-readable configuration format
//   - Table: Flattened FIELD/VALUE listing for terminals
//
// Usage:
//
//	w, err := serializer.NewFileWriter(serializer.FormatYAML, "result.yaml")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//		return err
//	}
package serializer

import "context"

// Serializer is an interface for serializing results.
//
// The context parameter is used for cancellation of implementations that
// perform I/O.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}
