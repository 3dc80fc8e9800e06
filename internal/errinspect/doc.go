// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errinspect classifies errors for exit codes and user hints.
// It centralizes the checks so the CLI never matches on error strings itself.
// Structured errors are recognised through the error chain; raw operating
// system errors that reach the top without a wrapper fall back to message
// inspection.
package errinspect
