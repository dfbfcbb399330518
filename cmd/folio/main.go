// Folio: catalog adapters for manga reader applications.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// cmd/folio/main.go
package main

import (
	"Folio/internal/commands"
	_ "Folio/internal/providers/mangadex" // Import for side effects (auto-registration)
)

var (
	Version = "dev"
)

func main() {
	commands.SetupVersion(Version)
	commands.Execute()
}
