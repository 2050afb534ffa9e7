package help

const ColdstartYAML = `# css-prioritize Quick Start

input_format:
  sequence: |
    - {float: 3, margin-left: 2}
    - {vertical-align: 1, font-family: 1}
  named: |
    name: buttons.css
    units:
      - {float: 3, margin-left: 2}
      - [vertical-align, font-family]   # name lists are counted per unit

weights:
  binary: "Each unit counts a property once (default)"
  identity: "Raw counts are summed"
  threshold: "Counts above --threshold-min score --threshold-weight, others 0"
  capped: "Counts are limited to --cap per unit"

commands:
  basic_tally: |
    css-prioritize tally rules.yaml

  many_inputs: |
    css-prioritize tally --workers 8 -i a.yaml -i b.yaml -o totals.yaml --summary summary.json

  continue_from_previous: |
    css-prioritize tally --initial totals.yaml new-rules.yaml

  repeated_use: |
    css-prioritize tally --weight threshold --threshold-min 1 --threshold-weight 5 rules.yaml

  ranking: |
    css-prioritize top --top 10 totals.yaml

output:
  - "Tallies keep key order: existing keys stay put, new keys append in first-seen order"
  - "--format json writes an ordered JSON object instead of YAML"
`
