// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

// HelpText is shown on startup and for help commands.
const HelpText = `Queries:
  *                 all records (empty filter)
  <filter>          e.g. ip LIKE "10.10.%" AND port != 80

Paging:
  :limit N          set page size
  :offset N         set offset
  :next             next page
  :prev             previous page

Output:
  :json <filter>    print the raw JSON response
  :raw              toggle raw JSON after each table

Dataset:
  :dataset          switch dataset
  :fields [kw]      list field names, optionally matching kw

  :help, help, ?    show this help
  :quit, quit, q    exit`
